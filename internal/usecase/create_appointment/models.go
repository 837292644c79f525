package create_appointment

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// Request запрос на создание записи
type Request struct {
	CompanyID       int64
	ClientID        int64
	ClientContactID *string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int // 0 = взять из услуги
	MasterID        *int64
	PostID          *int64
	ServiceID       *int64
	Comment         *string
}

// Response ответ с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
