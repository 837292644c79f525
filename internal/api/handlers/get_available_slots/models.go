package get_available_slots

import (
	"github.com/dkmsk/DCS-SchedulingService/internal/domain"
	getAvailableSlots "github.com/dkmsk/DCS-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель открытого слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	AvailableCount  int    `json:"availableCount"`
	TotalPosts      int    `json:"totalPosts"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами
type AvailableSlotsResponse struct {
	CompanyID       int64          `json:"companyId"`
	Date            string         `json:"date"` // "2026-03-15"
	DurationMinutes int            `json:"durationMinutes"`
	TotalPosts      int            `json:"totalPosts"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       string(slot.StartTime),
			DurationMinutes: slot.DurationMinutes,
			AvailableCount:  slot.AvailableCount,
			TotalPosts:      slot.TotalPosts,
		}
	}

	return &AvailableSlotsResponse{
		CompanyID:       resp.CompanyID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		TotalPosts:      resp.TotalPosts,
		Slots:           slots,
	}
}
