package postgres

import (
	"errors"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/template"
	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) template.Repository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(t *template.ShiftTemplate) error {
	return r.db.Create(t).Error
}

func (r *TemplateRepository) GetByID(id int64) (*template.ShiftTemplate, error) {
	var t template.ShiftTemplate
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTemplateNotFound
		}
		return nil, internal.NewInternalError("failed to get shift template", err)
	}
	return &t, nil
}

func (r *TemplateRepository) List(establishmentID *int64) ([]*template.ShiftTemplate, error) {
	var templates []*template.ShiftTemplate
	q := r.db.Order("id ASC")
	if establishmentID != nil {
		q = q.Where("establishment_id = ?", *establishmentID)
	}
	err := q.Find(&templates).Error
	return templates, err
}

func (r *TemplateRepository) Delete(id int64) error {
	return r.db.Delete(&template.ShiftTemplate{}, id).Error
}
