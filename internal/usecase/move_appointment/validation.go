package move_appointment

import (
	"fmt"
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: new date is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid new start time: %v", ErrInvalidInput, err)
	}

	if req.NewMasterID != nil && *req.NewMasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}
	if req.NewPostID != nil && *req.NewPostID <= 0 {
		return fmt.Errorf("%w: postID must be positive", ErrInvalidInput)
	}

	if req.NewMasterID != nil && req.ClearMaster {
		return fmt.Errorf("%w: cannot set and clear master at the same time", ErrInvalidInput)
	}
	if req.NewPostID != nil && req.ClearPost {
		return fmt.Errorf("%w: cannot set and clear post at the same time", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что целевая дата подходит для переноса
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

// validateWorkingHours проверяет, что целевой интервал целиком внутри рабочих часов
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

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
