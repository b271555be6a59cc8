package usecase

import (
	"context"
	"fmt"

	"sitter-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService covers the credential-revocation side of sessions. Token
// issuance happens outside this service.
type SessionService interface {
	// Logout revokes the single session behind the presented token.
	Logout(ctx context.Context, token string) error

	// RevokeUserSessions revokes every active session of a user (admin).
	RevokeUserSessions(ctx context.Context, userID string) error
}

type sessionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSessionService(repo *repository.Repository, log *zap.Logger) SessionService {
	return &sessionService{
		repo: repo,
		log:  log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing session token", ErrInvalidRequest)
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("Session revoked")
	return nil
}

func (s *sessionService) RevokeUserSessions(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID format %s", ErrInvalidRequest, userID)
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		s.log.Error("Failed to revoke user sessions",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("revoke user sessions: %w", err)
	}

	s.log.Info("All user sessions revoked",
		zap.String("user_id", userID),
	)
	return nil
}
