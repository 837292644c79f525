package domain

import "github.com/dkmsk/DCS-SchedulingService/pkg/types"

// AvailableSlot represents a time slot offerable for a new appointment.
// Slots are ephemeral: generated per query, never persisted.
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableCount  int // Free posts for this slot
	TotalPosts      int // Active posts in the registry snapshot
}

// IsFull returns true if the slot has no free capacity
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableCount <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all capacity free
func (s *AvailableSlot) IsPartiallyAvailable() bool {
	return s.AvailableCount > 0 && s.AvailableCount < s.TotalPosts
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalPosts == 0 {
		return 0
	}
	occupied := s.TotalPosts - s.AvailableCount
	return float64(occupied) / float64(s.TotalPosts) * 100
}
