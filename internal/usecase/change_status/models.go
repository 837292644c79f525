package change_status

import "github.com/dkmsk/DCS-SchedulingService/internal/domain"

// Request запрос на смену статуса записи
// Amount задаётся только при завершении; nil при завершении означает
// бесплатное завершение (сумма очищается, isPaid сбрасывается).
type Request struct {
	AppointmentID      int64
	NewStatus          domain.AppointmentStatus
	Amount             *float64
	PaymentMethod      *string
	CancellationReason *string
}

// Response ответ со сменённым статусом
// SuggestedAmount - подсказка из прайса услуги при завершении без суммы;
// в запись она не сохраняется. NotificationSent=false означает, что
// уведомление не доставлено (NotifyService деградировал), сама смена
// статуса при этом уже зафиксирована.
type Response struct {
	Appointment      *domain.Appointment
	SuggestedAmount  *float64
	NotificationSent bool
}
