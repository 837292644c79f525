package change_status

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	changeStatus "github.com/dkmsk/DCS-SchedulingService/internal/usecase/change_status"
)

// ChangeStatusRequest HTTP request model
// amount и paymentMethod имеют смысл только при переводе в completed
type ChangeStatusRequest struct {
	Status        string   `json:"status"`
	Amount        *float64 `json:"amount,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
}

// ChangeStatusResponse HTTP response model
// suggestedAmount - подсказка из прайса услуги, в запись не сохраняется
// notificationSent=false означает, что уведомление не доставлено,
// сама смена статуса при этом уже применена
type ChangeStatusResponse struct {
	ID               int64    `json:"id"`
	Status           string   `json:"status"`
	Amount           *float64 `json:"amount,omitempty"`
	IsPaid           bool     `json:"isPaid"`
	PaymentMethod    *string  `json:"paymentMethod,omitempty"`
	SuggestedAmount  *float64 `json:"suggestedAmount,omitempty"`
	NotificationSent bool     `json:"notificationSent"`
	UpdatedAt        string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ChangeStatusRequest) ToUseCaseRequest(appointmentID int64) *changeStatus.Request {
	return &changeStatus.Request{
		AppointmentID: appointmentID,
		NewStatus:     domain.AppointmentStatus(r.Status),
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) *ChangeStatusResponse {
	appt := resp.Appointment

	return &ChangeStatusResponse{
		ID:               appt.ID,
		Status:           string(appt.Status),
		Amount:           appt.Amount,
		IsPaid:           appt.IsPaid,
		PaymentMethod:    appt.PaymentMethod,
		SuggestedAmount:  resp.SuggestedAmount,
		NotificationSent: resp.NotificationSent,
		UpdatedAt:        appt.UpdatedAt.Format(time.RFC3339),
	}
}
