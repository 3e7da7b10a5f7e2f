package user

import (
	"regexp"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/auth"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// InviteUserDTO creates a directory entry with no credential. The invited
// person receives an activation link out of band.
type InviteUserDTO struct {
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Role            auth.Role `json:"role"`
	HourlyRate      float64   `json:"hourly_rate"`
	EstablishmentID *int64    `json:"establishment_id"`
	ManagerID       *int64    `json:"manager_id"`
}

func (d *InviteUserDTO) Validate() error {
	if !emailPattern.MatchString(d.Email) {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeInvalidEmail)
	}
	if d.FullName == "" {
		return internal.NewValidationError("full_name is required", internal.ErrCodeValidationFailed)
	}
	if d.Role == "" {
		d.Role = auth.RoleEmployee
	}
	if !d.Role.Valid() {
		return internal.NewValidationError("role must be admin, manager or employee", internal.ErrCodeInvalidRole)
	}
	if d.HourlyRate < 0 {
		return internal.NewValidationError("hourly_rate cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateUserDTO is a partial update: only fields present in the payload are
// applied, absent ones leave the record untouched.
type UpdateUserDTO struct {
	Email      *string    `json:"email"`
	FullName   *string    `json:"full_name"`
	Role       *auth.Role `json:"role"`
	HourlyRate *float64   `json:"hourly_rate"`
	ManagerID  *int64     `json:"manager_id"`
}

func (d *UpdateUserDTO) Validate() error {
	if d.Email != nil && !emailPattern.MatchString(*d.Email) {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeInvalidEmail)
	}
	if d.FullName != nil && *d.FullName == "" {
		return internal.NewValidationError("full_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Role != nil && !d.Role.Valid() {
		return internal.NewValidationError("role must be admin, manager or employee", internal.ErrCodeInvalidRole)
	}
	if d.HourlyRate != nil && *d.HourlyRate < 0 {
		return internal.NewValidationError("hourly_rate cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ApplyTo merges the provided fields into the record.
func (d *UpdateUserDTO) ApplyTo(u *User) {
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.FullName != nil {
		u.FullName = *d.FullName
	}
	if d.Role != nil {
		u.Role = *d.Role
	}
	if d.HourlyRate != nil {
		u.HourlyRate = *d.HourlyRate
	}
	if d.ManagerID != nil {
		u.ManagerID = d.ManagerID
	}
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}
