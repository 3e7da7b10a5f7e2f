package postgres

import (
	"errors"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/establishment"
	"gorm.io/gorm"
)

type EstablishmentRepository struct {
	db *gorm.DB
}

func NewEstablishmentRepository(db *gorm.DB) establishment.Repository {
	return &EstablishmentRepository{db: db}
}

func (r *EstablishmentRepository) Create(e *establishment.Establishment) error {
	return r.db.Create(e).Error
}

func (r *EstablishmentRepository) GetByID(id int64) (*establishment.Establishment, error) {
	var e establishment.Establishment
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEstablishmentNotFound
		}
		return nil, internal.NewInternalError("failed to get establishment", err)
	}
	return &e, nil
}

func (r *EstablishmentRepository) List(limit, offset int) ([]*establishment.Establishment, error) {
	var establishments []*establishment.Establishment
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&establishments).Error
	return establishments, err
}
