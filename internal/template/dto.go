package template

import (
	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/shift"
)

var allWeekdays = Weekdays{0, 1, 2, 3, 4, 5, 6}

type CreateTemplateDTO struct {
	Name            string               `json:"name"`
	StartTime       string               `json:"start_time"`
	EndTime         string               `json:"end_time"`
	Position        string               `json:"position"`
	ApplicableDays  Weekdays             `json:"applicable_days"`
	EstablishmentID int64                `json:"establishment_id"`
	BreakType       *string              `json:"break_type"`
	BreakDuration   *float64             `json:"break_duration"`
	BreakPaid       *bool                `json:"break_paid"`
	BreakTimes      shift.BreakIntervals `json:"break_times"`
}

func (d *CreateTemplateDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if d.StartTime == "" || d.EndTime == "" {
		return internal.NewValidationError("start_time and end_time are required", internal.ErrCodeValidationFailed)
	}
	if d.EstablishmentID == 0 {
		return internal.NewValidationError("establishment_id is required", internal.ErrCodeValidationFailed)
	}
	if len(d.ApplicableDays) == 0 {
		d.ApplicableDays = allWeekdays
	}
	for _, day := range d.ApplicableDays {
		if day < 0 || day > 6 {
			return internal.NewValidationError("applicable_days entries must be between 0 and 6", internal.ErrCodeInvalidDays)
		}
	}
	return nil
}

type ListTemplatesResponse struct {
	Templates []*ShiftTemplate `json:"templates"`
}
