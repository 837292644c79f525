package create_appointment

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_appointment: company not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrUnknownResource возвращается, когда назначенный мастер или пост
	// отсутствует в снапшоте реестра ресурсов
	ErrUnknownResource = errors.New("create_appointment: unknown resource")

	// ErrResourceConflict возвращается, когда назначенный ресурс уже занят
	// активной записью на пересекающемся интервале
	ErrResourceConflict = errors.New("create_appointment: resource conflict")

	// ErrInvalidDuration возвращается при нулевой или отрицательной длительности
	ErrInvalidDuration = errors.New("create_appointment: invalid duration")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrCompanyClosed возвращается, когда компания закрыта в указанную дату
	ErrCompanyClosed = errors.New("create_appointment: company is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал записи выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: appointment is outside working hours")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
