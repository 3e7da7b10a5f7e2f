package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/shift"
	"gorm.io/gorm"
)

// ShiftRepository implements shift.Repository using GORM.
type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.Repository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(s *shift.Shift) error {
	return r.db.Create(s).Error
}

func (r *ShiftRepository) GetByID(id int64) (*shift.Shift, error) {
	var s shift.Shift
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrShiftNotFound
		}
		return nil, internal.NewInternalError("failed to get shift", err)
	}
	return &s, nil
}

// List joins the owning users to filter the planning of one establishment.
func (r *ShiftRepository) List(establishmentID *int64) ([]*shift.Shift, error) {
	var shifts []*shift.Shift
	q := r.db.Order("shifts.id ASC")
	if establishmentID != nil {
		q = q.Joins("JOIN users ON users.id = shifts.user_id").
			Where("users.establishment_id = ?", *establishmentID)
	}
	if err := q.Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ShiftRepository) Update(s *shift.Shift) error {
	s.UpdatedAt = time.Now()
	return r.db.Save(s).Error
}

func (r *ShiftRepository) Delete(id int64) error {
	return r.db.Delete(&shift.Shift{}, id).Error
}

func (r *ShiftRepository) GetUserEstablishment(userID int64) (*int64, error) {
	var establishmentID sql.NullInt64

	row := r.db.Raw(`SELECT establishment_id FROM users WHERE id = ?`, userID).Row()
	if err := row.Scan(&establishmentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to resolve shift owner", err)
	}

	if !establishmentID.Valid {
		return nil, nil
	}
	id := establishmentID.Int64
	return &id, nil
}
