package template

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shiftwise/planning-api/internal/shift"
)

// Weekdays is the set of weekday indexes (0-6) a template applies to, stored
// as a JSON column.
type Weekdays []int

func (d Weekdays) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *Weekdays) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return fmt.Errorf("unsupported type for Weekdays: %T", value)
}

// ShiftTemplate is a reusable shift pattern owned by an establishment. It is
// not tied to a date or a user.
type ShiftTemplate struct {
	ID              int64                `json:"id" gorm:"primaryKey"`
	Name            string               `json:"name" gorm:"not null"`
	StartTime       string               `json:"start_time"`
	EndTime         string               `json:"end_time"`
	Position        string               `json:"position"`
	ApplicableDays  Weekdays             `json:"applicable_days" gorm:"type:text"`
	EstablishmentID int64                `json:"establishment_id" gorm:"not null;index"`
	BreakType       *string              `json:"break_type,omitempty"`
	BreakDuration   *float64             `json:"break_duration,omitempty"`
	BreakPaid       *bool                `json:"break_paid,omitempty"`
	BreakTimes      shift.BreakIntervals `json:"break_times,omitempty" gorm:"type:text"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (ShiftTemplate) TableName() string { return "shift_templates" }

type Repository interface {
	Create(t *ShiftTemplate) error
	GetByID(id int64) (*ShiftTemplate, error)
	List(establishmentID *int64) ([]*ShiftTemplate, error)
	Delete(id int64) error
}
