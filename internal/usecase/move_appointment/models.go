package move_appointment

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

// Request запрос на перенос записи
// Длительность не меняется: конец нового интервала выводится из существующей
// длительности записи. Пустой MasterID/PostID означает "оставить как было",
// явный ноль в ClearMaster/ClearPost снимает назначение.
type Request struct {
	AppointmentID int64
	NewDate       time.Time
	NewStartTime  types.TimeString
	NewMasterID   *int64
	NewPostID     *int64
	ClearMaster   bool
	ClearPost     bool
}

// Response ответ с перенесённой записью
type Response struct {
	Appointment *domain.Appointment
}
