package domain

// ConflictAxis names the resource axis on which a collision was found.
// Post exclusivity and master exclusivity are independent checks.
type ConflictAxis string

const (
	ConflictAxisPost   ConflictAxis = "post"
	ConflictAxisMaster ConflictAxis = "master"
)

// Conflict describes a collision with an existing active appointment
type Conflict struct {
	AppointmentID int64
	Axis          ConflictAxis
}

// ConflictCandidate кандидат на размещение: интервал + назначенные ресурсы
// Nil по оси означает, что ось не проверяется (запись без поста не конфликтует по постам).
type ConflictCandidate struct {
	Interval Interval
	MasterID *int64
	PostID   *int64
}

// FindConflicts scans active appointments for resource collisions with the candidate.
//
// An existing appointment conflicts when it holds the same non-nil post (or the
// same non-nil master) and its interval overlaps the candidate's interval.
// excludeID skips the appointment itself during a reschedule-of-self check.
// Returns an empty slice when the candidate is clear.
func FindConflicts(candidate ConflictCandidate, appointments []*Appointment, excludeID *int64) []Conflict {
	conflicts := make([]Conflict, 0)

	for _, appt := range appointments {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		// Завершённые и отменённые записи освобождают ресурсы
		if !appt.IsActive() {
			continue
		}

		interval, err := appt.Interval()
		if err != nil {
			// Запись с некорректным временем не участвует в проверке
			continue
		}
		if !candidate.Interval.Overlaps(interval) {
			continue
		}

		if sameResource(candidate.PostID, appt.PostID) {
			conflicts = append(conflicts, Conflict{AppointmentID: appt.ID, Axis: ConflictAxisPost})
		}
		if sameResource(candidate.MasterID, appt.MasterID) {
			conflicts = append(conflicts, Conflict{AppointmentID: appt.ID, Axis: ConflictAxisMaster})
		}
	}

	return conflicts
}

// sameResource true, только если обе стороны назначены и совпадают
func sameResource(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
