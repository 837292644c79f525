package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkmsk/DCS-SchedulingService/pkg/ptr"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

func makeAppointment(id int64, start types.TimeString, duration int, masterID, postID *int64, status AppointmentStatus) *Appointment {
	return &Appointment{
		ID:              id,
		CompanyID:       1,
		ClientID:        100,
		StartTime:       start,
		DurationMinutes: duration,
		MasterID:        masterID,
		PostID:          postID,
		Status:          status,
	}
}

func mustCandidate(t *testing.T, start types.TimeString, duration int, masterID, postID *int64) ConflictCandidate {
	t.Helper()
	interval, err := NewInterval(start, duration)
	require.NoError(t, err)
	return ConflictCandidate{Interval: interval, MasterID: masterID, PostID: postID}
}

func TestFindConflicts_PostAxis(t *testing.T) {
	existing := []*Appointment{
		makeAppointment(1, "10:00", 60, nil, ptr.Ptr(int64(5)), StatusConfirmed),
	}

	// Тот же пост, пересекающийся интервал
	conflicts := FindConflicts(mustCandidate(t, "10:30", 60, nil, ptr.Ptr(int64(5))), existing, nil)
	require.Len(t, conflicts, 1)
	assert.Equal(t, int64(1), conflicts[0].AppointmentID)
	assert.Equal(t, ConflictAxisPost, conflicts[0].Axis)

	// Другой пост - конфликта нет
	conflicts = FindConflicts(mustCandidate(t, "10:30", 60, nil, ptr.Ptr(int64(6))), existing, nil)
	assert.Empty(t, conflicts)

	// Кандидат без поста не проверяется по оси постов
	conflicts = FindConflicts(mustCandidate(t, "10:30", 60, nil, nil), existing, nil)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_MasterAxis(t *testing.T) {
	existing := []*Appointment{
		makeAppointment(2, "14:00", 30, ptr.Ptr(int64(7)), nil, StatusNew),
	}

	conflicts := FindConflicts(mustCandidate(t, "14:15", 30, ptr.Ptr(int64(7)), nil), existing, nil)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictAxisMaster, conflicts[0].Axis)

	conflicts = FindConflicts(mustCandidate(t, "14:15", 30, ptr.Ptr(int64(8)), nil), existing, nil)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_AxesAreIndependent(t *testing.T) {
	// Запись занимает мастера 7 и пост 5 одновременно
	existing := []*Appointment{
		makeAppointment(3, "10:00", 60, ptr.Ptr(int64(7)), ptr.Ptr(int64(5)), StatusConfirmed),
	}

	// Кандидат на тот же пост, но с другим мастером: конфликт только по посту
	conflicts := FindConflicts(mustCandidate(t, "10:00", 60, ptr.Ptr(int64(8)), ptr.Ptr(int64(5))), existing, nil)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictAxisPost, conflicts[0].Axis)

	// Кандидат на тот же мастер и тот же пост: обе оси
	conflicts = FindConflicts(mustCandidate(t, "10:00", 60, ptr.Ptr(int64(7)), ptr.Ptr(int64(5))), existing, nil)
	require.Len(t, conflicts, 2)
	axes := []ConflictAxis{conflicts[0].Axis, conflicts[1].Axis}
	assert.Contains(t, axes, ConflictAxisPost)
	assert.Contains(t, axes, ConflictAxisMaster)
}

func TestFindConflicts_TouchingBoundsDoNotConflict(t *testing.T) {
	existing := []*Appointment{
		makeAppointment(4, "09:00", 60, nil, ptr.Ptr(int64(5)), StatusConfirmed), // [09:00, 10:00)
	}

	// Начало ровно в момент окончания предыдущей записи
	conflicts := FindConflicts(mustCandidate(t, "10:00", 30, nil, ptr.Ptr(int64(5))), existing, nil)
	assert.Empty(t, conflicts)

	// Минутой раньше - уже конфликт
	conflicts = FindConflicts(mustCandidate(t, "09:59", 30, nil, ptr.Ptr(int64(5))), existing, nil)
	assert.Len(t, conflicts, 1)
}

func TestFindConflicts_InactiveAppointmentsFreeResources(t *testing.T) {
	existing := []*Appointment{
		makeAppointment(5, "10:00", 60, nil, ptr.Ptr(int64(5)), StatusCancelled),
		makeAppointment(6, "10:00", 60, nil, ptr.Ptr(int64(5)), StatusCompleted),
	}

	conflicts := FindConflicts(mustCandidate(t, "10:00", 60, nil, ptr.Ptr(int64(5))), existing, nil)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_ExcludeSelf(t *testing.T) {
	selfID := int64(10)
	existing := []*Appointment{
		makeAppointment(selfID, "10:00", 60, ptr.Ptr(int64(7)), ptr.Ptr(int64(5)), StatusConfirmed),
	}

	// Перенос записи внутри её собственного окна не конфликтует с самой собой
	candidate := mustCandidate(t, "10:30", 60, ptr.Ptr(int64(7)), ptr.Ptr(int64(5)))
	assert.NotEmpty(t, FindConflicts(candidate, existing, nil))
	assert.Empty(t, FindConflicts(candidate, existing, &selfID))
}

func TestFindConflicts_RandomizedAgainstNaiveCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iteration := 0; iteration < 200; iteration++ {
		appointments := make([]*Appointment, 0, 20)
		for i := 0; i < 20; i++ {
			startMin := 8*60 + rng.Intn(10*60)
			duration := 15 + rng.Intn(8)*15
			if startMin+duration > 24*60 {
				duration = 24*60 - startMin
			}
			start, err := types.NewTimeStringFromMinutes(startMin)
			require.NoError(t, err)

			var masterID, postID *int64
			if rng.Intn(2) == 0 {
				masterID = ptr.Ptr(int64(1 + rng.Intn(3)))
			}
			if rng.Intn(2) == 0 {
				postID = ptr.Ptr(int64(1 + rng.Intn(3)))
			}
			status := StatusConfirmed
			if rng.Intn(4) == 0 {
				status = StatusCancelled
			}
			appointments = append(appointments, makeAppointment(int64(i+1), start, duration, masterID, postID, status))
		}

		candidateStart := 8*60 + rng.Intn(10*60)
		candidateDuration := 15 + rng.Intn(8)*15
		if candidateStart+candidateDuration > 24*60 {
			candidateDuration = 24*60 - candidateStart
		}
		start, err := types.NewTimeStringFromMinutes(candidateStart)
		require.NoError(t, err)
		candidate := mustCandidate(t, start, candidateDuration,
			ptr.Ptr(int64(1+rng.Intn(3))), ptr.Ptr(int64(1+rng.Intn(3))))

		got := FindConflicts(candidate, appointments, nil)

		// Наивная проверка: каждая активная запись с тем же ресурсом
		// и пересекающимся интервалом должна быть в результате, и только она
		want := make([]Conflict, 0)
		for _, appt := range appointments {
			if !appt.IsActive() {
				continue
			}
			apptStart, _ := appt.StartTime.Minutes()
			apptEnd := apptStart + appt.DurationMinutes
			overlaps := candidateStart < apptEnd && apptStart < candidateStart+candidateDuration
			if !overlaps {
				continue
			}
			if appt.PostID != nil && *appt.PostID == *candidate.PostID {
				want = append(want, Conflict{AppointmentID: appt.ID, Axis: ConflictAxisPost})
			}
			if appt.MasterID != nil && *appt.MasterID == *candidate.MasterID {
				want = append(want, Conflict{AppointmentID: appt.ID, Axis: ConflictAxisMaster})
			}
		}

		assert.ElementsMatch(t, want, got, "iteration %d", iteration)
	}
}
