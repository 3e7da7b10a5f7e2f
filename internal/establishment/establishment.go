package establishment

import "time"

// Establishment is a business location/unit owning users and shift templates.
// Deletion would require cascading removal of dependents and is not exposed.
type Establishment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Establishment) TableName() string { return "establishments" }

type Repository interface {
	Create(e *Establishment) error
	GetByID(id int64) (*Establishment, error)
	List(limit, offset int) ([]*Establishment, error)
}
