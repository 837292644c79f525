package domain

// Default schedule configuration values
const (
	DefaultSlotGranularityMinutes  = 30
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
	DefaultCapacityAccounting      = true
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 240
	MinDurationMinutes          = 1
	MaxDurationMinutes          = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MaxCommentLength            = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов
// Записи в этих статусах не занимают ресурсы и не могут быть изменены
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses список статусов, в которых запись занимает свои ресурсы
// Используется при выборке записей для проверки конфликтов
var ActiveStatuses = []AppointmentStatus{
	StatusNew,
	StatusConfirmed,
}
