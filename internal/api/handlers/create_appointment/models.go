package create_appointment

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	createAppointment "github.com/dkmsk/DCS-SchedulingService/internal/usecase/create_appointment"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CompanyID       int64   `json:"companyId"`
	ClientContactID *string `json:"clientContactId,omitempty"`
	Date            string  `json:"date"`      // "2026-03-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	MasterID        *int64  `json:"masterId,omitempty"`
	PostID          *int64  `json:"postId,omitempty"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	Comment         *string `json:"comment,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	CompanyID       int64   `json:"companyId"`
	ClientID        int64   `json:"clientId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	MasterID        *int64  `json:"masterId,omitempty"`
	PostID          *int64  `json:"postId,omitempty"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	Status          string  `json:"status"`
	ServiceName     *string `json:"serviceName,omitempty"`
	Comment         *string `json:"comment,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// clientID берётся из заголовка аутентификации, не из тела
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CompanyID:       r.CompanyID,
		ClientID:        clientID,
		ClientContactID: r.ClientContactID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		MasterID:        r.MasterID,
		PostID:          r.PostID,
		ServiceID:       r.ServiceID,
		Comment:         r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	appt := resp.Appointment

	response := &AppointmentResponse{
		ID:              appt.ID,
		CompanyID:       appt.CompanyID,
		ClientID:        appt.ClientID,
		Date:            appt.Date.Format(domain.DateFormat),
		StartTime:       string(appt.StartTime),
		DurationMinutes: appt.DurationMinutes,
		MasterID:        appt.MasterID,
		PostID:          appt.PostID,
		ServiceID:       appt.ServiceID,
		Status:          string(appt.Status),
		ServiceName:     appt.ServiceName,
		Comment:         appt.Comment,
		CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       appt.UpdatedAt.Format(time.RFC3339),
	}

	if endTime, err := appt.EndTime(); err == nil {
		response.EndTime = string(endTime)
	}

	return response
}
