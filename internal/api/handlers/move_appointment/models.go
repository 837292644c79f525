package move_appointment

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	moveAppointment "github.com/dkmsk/DCS-SchedulingService/internal/usecase/move_appointment"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// MoveAppointmentRequest HTTP request model
// masterId/postId отсутствуют = оставить прежние назначения,
// clearMaster/clearPost снимают назначение явно
type MoveAppointmentRequest struct {
	NewDate      string `json:"newDate"`      // "2026-03-15"
	NewStartTime string `json:"newStartTime"` // "10:00"
	MasterID     *int64 `json:"masterId,omitempty"`
	PostID       *int64 `json:"postId,omitempty"`
	ClearMaster  bool   `json:"clearMaster,omitempty"`
	ClearPost    bool   `json:"clearPost,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	CompanyID       int64  `json:"companyId"`
	ClientID        int64  `json:"clientId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	MasterID        *int64 `json:"masterId,omitempty"`
	PostID          *int64 `json:"postId,omitempty"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MoveAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*moveAppointment.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &moveAppointment.Request{
		AppointmentID: appointmentID,
		NewDate:       newDate,
		NewStartTime:  newStartTime,
		NewMasterID:   r.MasterID,
		NewPostID:     r.PostID,
		ClearMaster:   r.ClearMaster,
		ClearPost:     r.ClearPost,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *moveAppointment.Response) *AppointmentResponse {
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
		UpdatedAt:       appt.UpdatedAt.Format(time.RFC3339),
	}

	if endTime, err := appt.EndTime(); err == nil {
		response.EndTime = string(endTime)
	}

	return response
}
