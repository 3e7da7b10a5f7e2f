package user

import (
	"time"

	"github.com/shiftwise/planning-api/internal/auth"
)

// User is a directory entry. A nil PasswordHash means the account has been
// invited but never activated; such an account cannot log in.
type User struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName        string    `json:"full_name"`
	Role            auth.Role `json:"role" gorm:"type:varchar(16);default:employee"`
	HourlyRate      float64   `json:"hourly_rate"`
	EstablishmentID *int64    `json:"establishment_id,omitempty"`
	ManagerID       *int64    `json:"manager_id,omitempty"`
	PasswordHash    *string   `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) Activated() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// ProfileRef projects the record into the shape the policy engine decides on.
func (u *User) ProfileRef() auth.ProfileRef {
	return auth.ProfileRef{
		ID:              u.ID,
		Role:            u.Role,
		EstablishmentID: u.EstablishmentID,
	}
}

// Repository is the directory's storage surface. The unique constraint on
// email is the authoritative race guard: implementations translate a
// duplicate-key failure into internal.ErrEmailTaken.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	List(establishmentID *int64, limit, offset int) ([]*User, error)
	Update(u *User) error
	Exists(id int64) (bool, error)
}
