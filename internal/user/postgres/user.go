package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrEmailTaken
		}
		return internal.NewInternalError("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return &u, nil
}

func (r *UserRepository) List(establishmentID *int64, limit, offset int) ([]*user.User, error) {
	var users []*user.User
	q := r.db.Order("id ASC").Limit(limit).Offset(offset)
	if establishmentID != nil {
		q = q.Where("establishment_id = ?", *establishmentID)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	if err := r.db.Save(u).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.ErrEmailTaken
		}
		return internal.NewInternalError("failed to update user", err)
	}
	return nil
}

func (r *UserRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&user.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// isUniqueViolation matches both the translated GORM error and the raw driver
// messages from postgres and sqlite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
