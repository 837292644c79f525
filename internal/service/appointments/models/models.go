package models

import (
	"errors"
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetCompanyAppointmentsRequest запрос на получение записей компании
type GetCompanyAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	CompanyID       int64      `json:"companyId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	MasterID        *int64     `json:"masterId,omitempty"`        // Фильтр по мастеру (опционально)
	PostID          *int64     `json:"postId,omitempty"`          // Фильтр по посту (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCompanyAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		CompanyID:       r.CompanyID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		MasterID:        r.MasterID,
		PostID:          r.PostID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	CompanyID       int64  `json:"companyId"`
	ClientID        int64  `json:"clientId"`
	Date            string `json:"date"`      // "2026-03-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "10:30", выводится из длительности
	DurationMinutes int    `json:"durationMinutes"`
	MasterID        *int64 `json:"masterId,omitempty"`
	PostID          *int64 `json:"postId,omitempty"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	Status          string `json:"status"`

	// Оплата
	Amount        *float64 `json:"amount,omitempty"`
	IsPaid        bool     `json:"isPaid"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`

	// Денормализованные данные
	ServiceName *string `json:"serviceName,omitempty"`
	Comment     *string `json:"comment,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		CompanyID:          a.CompanyID,
		ClientID:           a.ClientID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          string(a.StartTime),
		DurationMinutes:    a.DurationMinutes,
		MasterID:           a.MasterID,
		PostID:             a.PostID,
		ServiceID:          a.ServiceID,
		Status:             string(a.Status),
		Amount:             a.Amount,
		IsPaid:             a.IsPaid,
		PaymentMethod:      a.PaymentMethod,
		ServiceName:        a.ServiceName,
		Comment:            a.Comment,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конец записи выводится из начала и длительности
	if endTime, err := a.EndTime(); err == nil {
		resp.EndTime = string(endTime)
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
