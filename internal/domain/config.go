package domain

import "time"

// ScheduleConfig represents the scheduling configuration for a company
// Supports hierarchical configuration:
// 1. Service-specific (company_id, service_id)
// 2. Company-wide (company_id, NULL)
type ScheduleConfig struct {
	ID        int64
	CompanyID int64
	ServiceID *int64 // NULL = config for all services

	SlotGranularityMinutes int
	// CapacityAccounting false переключает расчёт доступности на чистую временную сетку:
	// слот предлагается, пока он в рабочих часах, без учёта занятости постов
	CapacityAccounting      bool
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobalConfig returns true if this is a company-wide configuration
func (c *ScheduleConfig) IsGlobalConfig() bool {
	return c.ServiceID == nil
}

// IsServiceSpecific returns true if this configuration is for a specific service
func (c *ScheduleConfig) IsServiceSpecific() bool {
	return c.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultScheduleConfig returns the configuration used when a company has none stored
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		CapacityAccounting:      DefaultCapacityAccounting,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
