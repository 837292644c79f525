package update_schedule_config

import "github.com/dkmsk/DCS-SchedulingService/internal/service/config/models"

// UpdateScheduleConfigRequest HTTP request model
// Пара (companyId из пути, serviceId) определяет уровень конфигурации
type UpdateScheduleConfigRequest struct {
	ServiceID               *int64 `json:"serviceId,omitempty"`
	SlotGranularityMinutes  int    `json:"slotGranularityMinutes"`
	CapacityAccounting      *bool  `json:"capacityAccounting,omitempty"` // nil = true
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleConfigRequest) ToServiceRequest(companyID, userID int64) *models.UpsertConfigRequest {
	capacityAccounting := true
	if r.CapacityAccounting != nil {
		capacityAccounting = *r.CapacityAccounting
	}

	return &models.UpsertConfigRequest{
		UserID:                  userID,
		CompanyID:               companyID,
		ServiceID:               r.ServiceID,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		CapacityAccounting:      capacityAccounting,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
