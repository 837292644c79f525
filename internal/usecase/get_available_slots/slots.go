package get_available_slots

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// generateTimeSlots генерирует сетку кандидатов начала записи на день
// Сетка идёт от открытия до закрытия с фиксированным шагом granularity и не зависит
// от количества ресурсов. Кандидат отбрасывается, если запись длительностью
// durationMinutes не успевает закончиться до закрытия.
//
// Для сегодняшней даты слоты фильтруются по текущему времени: отбрасываются только
// уже прошедшие времена начала (строгое сравнение - слот на текущую минуту ещё
// предлагается), плюс минимальное время до записи из конфигурации.
func generateTimeSlots(
	workingHours companyservice.DaySchedule,
	granularityMinutes int,
	durationMinutes int,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) ([]types.TimeString, error) {
	// Дата в прошлом - слотов нет
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Компания закрыта в этот день
	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return []types.TimeString{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return nil, err
	}

	// Шаг 1: генерируем все кандидаты от открытия до закрытия с шагом granularity
	allSlots := make([]types.TimeString, 0)
	currentSlot := openTime

	for currentSlot.IsBefore(closeTime) {
		// Запись должна заканчиваться не позже закрытия
		slotEnd, err := currentSlot.AddMinutes(durationMinutes)
		if err != nil {
			// Конец записи пересёк полночь - дальше слотов не будет
			break
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)

		currentSlot, err = currentSlot.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
	}

	// Шаг 2: если дата не сегодня - возвращаем всю сетку
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: для сегодняшней даты отбрасываем прошедшие времена начала
	// Сравнение строгое: слот, начинающийся в текущую минуту, ещё предлагается
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// occupiedCapacity считает занятую ёмкость на интервале слота:
// количество различных постов, занятых активными записями с пересекающимся
// интервалом, плюс по одной единице общей ёмкости за каждую активную запись
// без назначенного поста (виртуальные записи тоже расходуют общий пул).
func occupiedCapacity(slotInterval domain.Interval, appointments []*domain.Appointment) int {
	occupiedPosts := make(map[int64]struct{})
	unassigned := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		interval, err := appt.Interval()
		if err != nil {
			continue
		}
		if !slotInterval.Overlaps(interval) {
			continue
		}

		if appt.PostID != nil {
			occupiedPosts[*appt.PostID] = struct{}{}
		} else {
			unassigned++
		}
	}

	return len(occupiedPosts) + unassigned
}

// resourceBusy проверяет, занят ли конкретный ресурс на интервале слота
// Ось задаётся выбором поля: пост и мастер проверяются независимо.
func resourceBusy(slotInterval domain.Interval, appointments []*domain.Appointment, masterID, postID *int64) bool {
	candidate := domain.ConflictCandidate{
		Interval: slotInterval,
		MasterID: masterID,
		PostID:   postID,
	}
	return len(domain.FindConflicts(candidate, appointments, nil)) > 0
}

// buildSlots рассчитывает доступность для каждого кандидата и отфильтровывает закрытые
//
// Слот открыт, если availableCount > 0, либо учёт ёмкости выключен конфигурацией
// и ограничение по конкретному ресурсу не запрошено (чистая временная сетка).
// При ограничении по мастеру/посту дополнительно исключаются слоты, где именно
// этот ресурс уже занят.
func buildSlots(
	candidates []types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	totalPosts int,
	capacityAccounting bool,
	masterID, postID *int64,
) ([]Slot, error) {
	slots := make([]Slot, 0, len(candidates))

	for _, start := range candidates {
		interval, err := domain.NewInterval(start, durationMinutes)
		if err != nil {
			return nil, err
		}

		occupied := occupiedCapacity(interval, appointments)
		availableCount := totalPosts - occupied
		if availableCount < 0 {
			availableCount = 0
		}

		constrained := masterID != nil || postID != nil

		open := availableCount > 0 || (!capacityAccounting && !constrained)
		if !open {
			continue
		}

		// Запрошенный конкретный ресурс должен быть свободен на всём интервале
		if constrained && resourceBusy(interval, appointments, masterID, postID) {
			continue
		}

		slots = append(slots, Slot{
			StartTime:       start,
			DurationMinutes: durationMinutes,
			AvailableCount:  availableCount,
			TotalPosts:      totalPosts,
		})
	}

	return slots, nil
}

// getWorkingHoursForDay возвращает расписание работы компании на указанный день недели
func getWorkingHoursForDay(company *companyservice.Company, date time.Time) companyservice.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return company.WorkingHours.Monday
	case time.Tuesday:
		return company.WorkingHours.Tuesday
	case time.Wednesday:
		return company.WorkingHours.Wednesday
	case time.Thursday:
		return company.WorkingHours.Thursday
	case time.Friday:
		return company.WorkingHours.Friday
	case time.Saturday:
		return company.WorkingHours.Saturday
	case time.Sunday:
		return company.WorkingHours.Sunday
	default:
		return companyservice.DaySchedule{IsOpen: false}
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
