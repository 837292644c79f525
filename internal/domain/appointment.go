package domain

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// Appointment represents a client appointment in the system
type Appointment struct {
	ID              int64
	CompanyID       int64
	ClientID        int64
	ClientContactID *string // внешний идентификатор для уведомлений (nil = клиент недоступен для рассылки)
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	MasterID        *int64 // nil = запись без мастера
	PostID          *int64 // nil = запись без поста (виртуальная, занимает одну единицу общей ёмкости)
	ServiceID       *int64
	Status          AppointmentStatus

	// Payment fields, meaningful only once Status == completed.
	// A positive Amount implies IsPaid; a cleared Amount resets IsPaid.
	Amount        *float64
	IsPaid        bool
	PaymentMethod *string

	// Denormalized data for history
	ServiceName *string
	Comment     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its assigned resources.
// Completed and cancelled appointments free their resources.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusNew || a.Status == StatusConfirmed
}

// CanBeMoved returns true if the appointment may be rescheduled.
// Terminal appointments are immutable.
func (a *Appointment) CanBeMoved() bool {
	return a.Status == StatusNew || a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusNew || a.Status == StatusConfirmed
}

// Interval returns the occupied interval, always recomputed from start+duration
func (a *Appointment) Interval() (Interval, error) {
	return NewInterval(a.StartTime, a.DurationMinutes)
}

// EndTime returns the derived end time of the appointment
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// AppointmentsFilter фильтр для выборки записей компании
type AppointmentsFilter struct {
	CompanyID       int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	MasterID        *int64             // Фильтр по мастеру (опционально)
	PostID          *int64             // Фильтр по посту (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые и отменённые записи
}
