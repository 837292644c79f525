package move_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("move_appointment: appointment not found")

	// ErrInvalidTransition возвращается при попытке перенести завершённую
	// или отменённую запись
	ErrInvalidTransition = errors.New("move_appointment: appointment cannot be moved in its current status")

	// ErrUnknownResource возвращается, когда целевой мастер или пост
	// отсутствует в снапшоте реестра ресурсов
	ErrUnknownResource = errors.New("move_appointment: unknown resource")

	// ErrResourceConflict возвращается, когда целевой слот конфликтует
	// с другой активной записью (сама переносимая запись исключается)
	ErrResourceConflict = errors.New("move_appointment: resource conflict")

	// ErrInvalidDate возвращается при некорректной целевой дате
	ErrInvalidDate = errors.New("move_appointment: invalid target date")

	// ErrDateTooFarInFuture возвращается, когда целевая дата превышает advanceBookingDays
	ErrDateTooFarInFuture = errors.New("move_appointment: date is too far in the future")

	// ErrCompanyClosed возвращается, когда компания закрыта в целевую дату
	ErrCompanyClosed = errors.New("move_appointment: company is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда целевой интервал выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("move_appointment: appointment is outside working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_appointment: internal error")
)
