package get_available_slots

import (
	"fmt"
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Отрицательная длительность отклоняется сразу; ноль допустим,
	// только если длительность можно взять из услуги
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

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
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
