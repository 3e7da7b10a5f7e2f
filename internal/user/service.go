package user

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/auth"
	"github.com/shiftwise/planning-api/internal/notification"
)

const defaultListLimit = 100

// InviteTokenIssuer mints activation tokens for invited accounts.
type InviteTokenIssuer interface {
	GenerateInviteToken(email string) (string, error)
}

// Service owns the account directory and the invite half of the activation
// flow. All reads and writes go through the access policy.
type Service struct {
	repo              Repository
	tokens            InviteTokenIssuer
	deliverer         notification.Deliverer
	activationBaseURL string
	logger            *slog.Logger
}

func NewService(repo Repository, tokens InviteTokenIssuer, deliverer notification.Deliverer, activationBaseURL string, logger *slog.Logger) *Service {
	return &Service{
		repo:              repo,
		tokens:            tokens,
		deliverer:         deliverer,
		activationBaseURL: activationBaseURL,
		logger:            logger,
	}
}

// Invite creates an account in the invited state (no credential) and sends an
// activation link. Under concurrent invites for the same email the database
// unique constraint decides the winner; the loser gets a conflict.
func (s *Service) Invite(ctx context.Context, actor *auth.Actor, dto InviteUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := auth.CanInvite(actor, dto.EstablishmentID).Err(); err != nil {
		s.logger.Warn("invite denied", "actor_id", actor.ID, "email", dto.Email)
		return nil, err
	}

	if dto.ManagerID != nil {
		exists, err := s.repo.Exists(*dto.ManagerID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check manager reference", err)
		}
		if !exists {
			return nil, internal.NewValidationError("manager_id does not reference an existing user", internal.ErrCodeManagerNotFound)
		}
	}

	u := &User{
		Email:           dto.Email,
		FullName:        dto.FullName,
		Role:            dto.Role,
		HourlyRate:      dto.HourlyRate,
		EstablishmentID: dto.EstablishmentID,
		ManagerID:       dto.ManagerID,
		PasswordHash:    nil, // invited, not activated
	}

	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateInviteToken(u.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue activation token", err)
	}

	link := s.activationLink(token)
	if err := s.deliverer.Deliver(ctx, u.Email, link); err != nil {
		// Delivery is best effort; the account exists and the invite can be
		// re-sent. Never fail the request over it.
		s.logger.Error("activation link delivery failed", "recipient", u.Email, "error", err)
	}

	s.logger.Info("user invited", "user_id", u.ID, "email", u.Email, "invited_by", actor.ID)

	return u, nil
}

// GetByID returns a profile if the policy permits the actor to read it.
func (s *Service) GetByID(actor *auth.Actor, id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := auth.CanReadProfile(actor, u.ProfileRef()).Err(); err != nil {
		s.logger.Warn("profile read denied", "actor_id", actor.ID, "target_id", id)
		return nil, err
	}

	return u, nil
}

// List returns directory entries scoped by the policy: admins see everything,
// managers their own establishment. A manager's nil filter defaults to their
// establishment.
func (s *Service) List(actor *auth.Actor, establishmentID *int64, limit, offset int) ([]*User, error) {
	if err := auth.CanListProfiles(actor, establishmentID).Err(); err != nil {
		s.logger.Warn("user listing denied", "actor_id", actor.ID)
		return nil, err
	}

	if actor.Role != auth.RoleAdmin && establishmentID == nil {
		establishmentID = actor.EstablishmentID
	}

	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.List(establishmentID, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}

	return users, nil
}

// Update applies a partial profile update under the update policy.
func (s *Service) Update(actor *auth.Actor, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := auth.CanUpdateProfile(actor, u.ProfileRef()).Err(); err != nil {
		s.logger.Warn("profile update denied", "actor_id", actor.ID, "target_id", id)
		return nil, err
	}

	if dto.ManagerID != nil {
		exists, err := s.repo.Exists(*dto.ManagerID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check manager reference", err)
		}
		if !exists {
			return nil, internal.NewValidationError("manager_id does not reference an existing user", internal.ErrCodeManagerNotFound)
		}
	}

	dto.ApplyTo(u)

	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", u.ID, "updated_by", actor.ID)

	return u, nil
}

func (s *Service) activationLink(token string) string {
	return fmt.Sprintf("%s?token=%s", s.activationBaseURL, url.QueryEscape(token))
}
