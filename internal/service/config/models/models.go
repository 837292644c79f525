package models

import (
	"time"

	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
)

// Request модели

// GetConfigRequest запрос на получение конфигурации (для иерархического поиска)
type GetConfigRequest struct {
	CompanyID int64  `json:"companyId"`
	ServiceID *int64 `json:"serviceId,omitempty"` // nil означает общую конфигурацию компании
}

// UpsertConfigRequest запрос на создание или обновление конфигурации расписания
// Пара (companyId, serviceId) определяет уровень: nil serviceId = общая для компании
type UpsertConfigRequest struct {
	UserID                  int64  `json:"userId"`
	CompanyID               int64  `json:"companyId"`
	ServiceID               *int64 `json:"serviceId,omitempty"`
	SlotGranularityMinutes  int    `json:"slotGranularityMinutes"`
	CapacityAccounting      bool   `json:"capacityAccounting"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"` // 0 = без ограничений
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// ToDomainConfig конвертирует UpsertConfigRequest в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		CompanyID:               r.CompanyID,
		ServiceID:               r.ServiceID,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		CapacityAccounting:      r.CapacityAccounting,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}

// Response модели

// ConfigResponse ответ с данными конфигурации расписания
type ConfigResponse struct {
	ID                      int64     `json:"id"`
	CompanyID               int64     `json:"companyId"`
	ServiceID               *int64    `json:"serviceId,omitempty"`
	SlotGranularityMinutes  int       `json:"slotGranularityMinutes"`
	CapacityAccounting      bool      `json:"capacityAccounting"`
	AdvanceBookingDays      int       `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int       `json:"minBookingNoticeMinutes"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                      c.ID,
		CompanyID:               c.CompanyID,
		ServiceID:               c.ServiceID,
		SlotGranularityMinutes:  c.SlotGranularityMinutes,
		CapacityAccounting:      c.CapacityAccounting,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}
