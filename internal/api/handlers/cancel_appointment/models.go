package cancel_appointment

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	changeStatus "github.com/dkmsk/DCS-SchedulingService/internal/usecase/change_status"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID                 int64   `json:"id"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	NotificationSent   bool    `json:"notificationSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case смены статуса
func (r *CancelAppointmentRequest) ToUseCaseRequest(appointmentID int64) *changeStatus.Request {
	return &changeStatus.Request{
		AppointmentID:      appointmentID,
		NewStatus:          domain.StatusCancelled,
		CancellationReason: r.CancellationReason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) *CancelAppointmentResponse {
	appt := resp.Appointment

	response := &CancelAppointmentResponse{
		ID:                 appt.ID,
		Status:             string(appt.Status),
		CancellationReason: appt.CancellationReason,
		NotificationSent:   resp.NotificationSent,
	}

	if appt.CancelledAt != nil {
		cancelledStr := appt.CancelledAt.Format(time.RFC3339)
		response.CancelledAt = &cancelledStr
	}

	return response
}
