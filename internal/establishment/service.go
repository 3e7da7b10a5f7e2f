package establishment

import (
	"log/slog"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/auth"
)

const defaultListLimit = 100

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(actor *auth.Actor, dto CreateEstablishmentDTO) (*Establishment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := auth.CanCreateEstablishment(actor).Err(); err != nil {
		s.logger.Warn("establishment creation denied", "actor_id", actor.ID)
		return nil, err
	}

	e := &Establishment{
		Name:    dto.Name,
		Address: dto.Address,
	}

	if err := s.repo.Create(e); err != nil {
		return nil, internal.NewInternalError("failed to create establishment", err)
	}

	s.logger.Info("establishment created", "establishment_id", e.ID, "created_by", actor.ID)

	return e, nil
}

func (s *Service) GetByID(id int64) (*Establishment, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(limit, offset int) ([]*Establishment, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(limit, offset)
}
