package create_appointment

import (
	"fmt"
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidDuration, req.DurationMinutes)
	}
	if req.DurationMinutes == 0 && req.ServiceID == nil {
		return fmt.Errorf("%w: duration is required when no service is given", ErrInvalidDuration)
	}
	if req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidDuration, domain.MaxDurationMinutes)
	}

	if req.MasterID != nil && *req.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}
	if req.PostID != nil && *req.PostID <= 0 {
		return fmt.Errorf("%w: postID must be positive", ErrInvalidInput)
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateWorkingHours проверяет, что интервал записи целиком внутри рабочих часов
func validateWorkingHours(workingHours companyservice.DaySchedule, interval domain.Interval) error {
	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return ErrCompanyClosed
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	openMinutes, err := openTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	closeMinutes, err := closeTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if interval.Start < openMinutes || interval.End > closeMinutes {
		return fmt.Errorf("%w: slot must fit between %s and %s",
			ErrOutsideWorkingHours, *workingHours.OpenTime, *workingHours.CloseTime)
	}

	return nil
}

// validateBookingNotice проверяет минимальное время до записи для сегодняшней даты
// Сравнение строгое: запись на текущую минуту ещё принимается.
func validateBookingNotice(
	requestDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	if !isSameDay(requestDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Минимальный порог пересёк полночь - сегодня записаться уже нельзя
		return ErrTooLateToBook
	}

	if startTime.IsBefore(minAllowedTime) {
		return ErrTooLateToBook
	}

	return nil
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
