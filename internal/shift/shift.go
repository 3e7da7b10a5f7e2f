package shift

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BreakInterval is one break window inside a shift. Times are free-form
// strings ("12:00"), same as the planned start and end; ordering is not
// validated here.
type BreakInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BreakIntervals stores the ordered break windows as a JSON column.
type BreakIntervals []BreakInterval

func (b BreakIntervals) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

func (b *BreakIntervals) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	}
	return fmt.Errorf("unsupported type for BreakIntervals: %T", value)
}

// Shift is a concrete scheduled work period for one user.
type Shift struct {
	ID            int64          `json:"id" gorm:"primaryKey"`
	UserID        int64          `json:"user_id" gorm:"not null;index"`
	PlannedStart  string         `json:"planned_start"`
	PlannedEnd    string         `json:"planned_end"`
	Position      string         `json:"position"`
	Type          string         `json:"type" gorm:"default:work"`
	Quantity      float64        `json:"quantity"`
	BreakType     *string        `json:"break_type,omitempty"`
	BreakDuration *float64       `json:"break_duration,omitempty"`
	BreakPaid     *bool          `json:"break_paid,omitempty"`
	BreakTimes    BreakIntervals `json:"break_times,omitempty" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Shift) TableName() string { return "shifts" }

type Repository interface {
	Create(s *Shift) error
	GetByID(id int64) (*Shift, error)
	List(establishmentID *int64) ([]*Shift, error)
	Update(s *Shift) error
	Delete(id int64) error
	// GetUserEstablishment resolves the owning user's establishment, or
	// internal.ErrUserNotFound when the user does not exist.
	GetUserEstablishment(userID int64) (*int64, error)
}
