package template

import (
	"log/slog"

	"github.com/shiftwise/planning-api/internal/auth"
)

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

func (s *Service) Create(actor *auth.Actor, dto CreateTemplateDTO) (*ShiftTemplate, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := auth.CanManageSchedule(actor, &dto.EstablishmentID).Err(); err != nil {
		s.logger.Warn("template creation denied", "actor_id", actor.ID, "establishment_id", dto.EstablishmentID)
		return nil, err
	}

	t := &ShiftTemplate{
		Name:            dto.Name,
		StartTime:       dto.StartTime,
		EndTime:         dto.EndTime,
		Position:        dto.Position,
		ApplicableDays:  dto.ApplicableDays,
		EstablishmentID: dto.EstablishmentID,
		BreakType:       dto.BreakType,
		BreakDuration:   dto.BreakDuration,
		BreakPaid:       dto.BreakPaid,
		BreakTimes:      dto.BreakTimes,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, err
	}

	s.logger.Info("shift template created", "template_id", t.ID, "created_by", actor.ID)

	return t, nil
}

// List returns templates for one establishment; non-admins default to their
// own establishment.
func (s *Service) List(actor *auth.Actor, establishmentID *int64) ([]*ShiftTemplate, error) {
	if actor.Role != auth.RoleAdmin && establishmentID == nil {
		establishmentID = actor.EstablishmentID
	}

	if establishmentID != nil {
		if err := auth.CanViewSchedule(actor, establishmentID).Err(); err != nil {
			s.logger.Warn("template listing denied", "actor_id", actor.ID)
			return nil, err
		}
	} else if actor.Role != auth.RoleAdmin {
		return nil, auth.Deny(auth.ReasonNotYourEstablishment).Err()
	}

	return s.repo.List(establishmentID)
}

func (s *Service) Delete(actor *auth.Actor, id int64) error {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := auth.CanManageSchedule(actor, &t.EstablishmentID).Err(); err != nil {
		s.logger.Warn("template deletion denied", "actor_id", actor.ID, "template_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("shift template deleted", "template_id", id, "deleted_by", actor.ID)

	return nil
}
