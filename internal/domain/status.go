package domain

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusNew       AppointmentStatus = "new"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// allowedTransitions таблица допустимых переходов статусов
// Завершение возможно только из confirmed: new -> confirmed -> completed.
// completed и cancelled терминальные - из них переходов нет
var allowedTransitions = map[AppointmentStatus]map[AppointmentStatus]bool{
	StatusNew: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition returns true if the status change from -> to is allowed
func CanTransition(from, to AppointmentStatus) bool {
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// IsTerminal returns true for statuses that permit no further transitions
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValid returns true if the status is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
