package change_status

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("change_status: appointment not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("change_status: invalid status")

	// ErrInvalidTransition возвращается, когда переход запрещён матрицей статусов
	ErrInvalidTransition = errors.New("change_status: invalid status transition")

	// ErrInvalidAmount возвращается при отрицательной сумме оплаты
	ErrInvalidAmount = errors.New("change_status: invalid amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("change_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_status: internal error")
)
