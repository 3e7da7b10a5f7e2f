package shift

import "github.com/shiftwise/planning-api/internal"

type CreateShiftDTO struct {
	UserID        int64          `json:"user_id"`
	PlannedStart  string         `json:"planned_start"`
	PlannedEnd    string         `json:"planned_end"`
	Position      string         `json:"position"`
	Type          string         `json:"type"`
	Quantity      float64        `json:"quantity"`
	BreakType     *string        `json:"break_type"`
	BreakDuration *float64       `json:"break_duration"`
	BreakPaid     *bool          `json:"break_paid"`
	BreakTimes    BreakIntervals `json:"break_times"`
}

func (d *CreateShiftDTO) Validate() error {
	if d.UserID == 0 {
		return internal.NewValidationError("user_id is required", internal.ErrCodeValidationFailed)
	}
	if d.PlannedStart == "" || d.PlannedEnd == "" {
		return internal.NewValidationError("planned_start and planned_end are required", internal.ErrCodeValidationFailed)
	}
	if d.Type == "" {
		d.Type = "work"
	}
	return nil
}

// UpdateShiftDTO applies only the fields present in the payload.
type UpdateShiftDTO struct {
	PlannedStart  *string         `json:"planned_start"`
	PlannedEnd    *string         `json:"planned_end"`
	Position      *string         `json:"position"`
	Type          *string         `json:"type"`
	Quantity      *float64        `json:"quantity"`
	BreakType     *string         `json:"break_type"`
	BreakDuration *float64        `json:"break_duration"`
	BreakPaid     *bool           `json:"break_paid"`
	BreakTimes    *BreakIntervals `json:"break_times"`
}

func (d *UpdateShiftDTO) ApplyTo(s *Shift) {
	if d.PlannedStart != nil {
		s.PlannedStart = *d.PlannedStart
	}
	if d.PlannedEnd != nil {
		s.PlannedEnd = *d.PlannedEnd
	}
	if d.Position != nil {
		s.Position = *d.Position
	}
	if d.Type != nil {
		s.Type = *d.Type
	}
	if d.Quantity != nil {
		s.Quantity = *d.Quantity
	}
	if d.BreakType != nil {
		s.BreakType = d.BreakType
	}
	if d.BreakDuration != nil {
		s.BreakDuration = d.BreakDuration
	}
	if d.BreakPaid != nil {
		s.BreakPaid = d.BreakPaid
	}
	if d.BreakTimes != nil {
		s.BreakTimes = *d.BreakTimes
	}
}

type ListShiftsResponse struct {
	Shifts []*Shift `json:"shifts"`
}
