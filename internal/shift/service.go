package shift

import (
	"log/slog"

	"github.com/shiftwise/planning-api/internal/auth"
)

// Service owns shift CRUD. Mutations are gated on schedule-management rights
// for the establishment of the shift's owner; reads are open to members of
// that establishment.
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

func (s *Service) Create(actor *auth.Actor, dto CreateShiftDTO) (*Shift, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	establishmentID, err := s.repo.GetUserEstablishment(dto.UserID)
	if err != nil {
		return nil, err
	}

	if err := auth.CanManageSchedule(actor, establishmentID).Err(); err != nil {
		s.logger.Warn("shift creation denied", "actor_id", actor.ID, "target_user_id", dto.UserID)
		return nil, err
	}

	sh := &Shift{
		UserID:        dto.UserID,
		PlannedStart:  dto.PlannedStart,
		PlannedEnd:    dto.PlannedEnd,
		Position:      dto.Position,
		Type:          dto.Type,
		Quantity:      dto.Quantity,
		BreakType:     dto.BreakType,
		BreakDuration: dto.BreakDuration,
		BreakPaid:     dto.BreakPaid,
		BreakTimes:    dto.BreakTimes,
	}

	if err := s.repo.Create(sh); err != nil {
		return nil, err
	}

	s.logger.Info("shift created", "shift_id", sh.ID, "user_id", sh.UserID, "created_by", actor.ID)

	return sh, nil
}

func (s *Service) Update(actor *auth.Actor, id int64, dto UpdateShiftDTO) (*Shift, error) {
	sh, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	establishmentID, err := s.repo.GetUserEstablishment(sh.UserID)
	if err != nil {
		return nil, err
	}

	if err := auth.CanManageSchedule(actor, establishmentID).Err(); err != nil {
		s.logger.Warn("shift update denied", "actor_id", actor.ID, "shift_id", id)
		return nil, err
	}

	dto.ApplyTo(sh)

	if err := s.repo.Update(sh); err != nil {
		return nil, err
	}

	return sh, nil
}

func (s *Service) Delete(actor *auth.Actor, id int64) error {
	sh, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	establishmentID, err := s.repo.GetUserEstablishment(sh.UserID)
	if err != nil {
		return err
	}

	if err := auth.CanManageSchedule(actor, establishmentID).Err(); err != nil {
		s.logger.Warn("shift deletion denied", "actor_id", actor.ID, "shift_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("shift deleted", "shift_id", id, "deleted_by", actor.ID)

	return nil
}

// List returns the planning for one establishment. Non-admins default to
// their own establishment and cannot read another one's.
func (s *Service) List(actor *auth.Actor, establishmentID *int64) ([]*Shift, error) {
	if actor.Role != auth.RoleAdmin && establishmentID == nil {
		establishmentID = actor.EstablishmentID
	}

	if establishmentID != nil {
		if err := auth.CanViewSchedule(actor, establishmentID).Err(); err != nil {
			s.logger.Warn("shift listing denied", "actor_id", actor.ID)
			return nil, err
		}
	} else if actor.Role != auth.RoleAdmin {
		return nil, auth.Deny(auth.ReasonNotYourEstablishment).Err()
	}

	return s.repo.List(establishmentID)
}
