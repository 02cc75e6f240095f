package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"auctioneer/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
	clock      Clock
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, clock Clock) UserService {
	return &userService{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// ResolveSession returns the user behind a session token
func (s *userService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := uow.UserRepository().GetSession(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil || session.IsExpired(s.clock.Now()) {
		return nil, nil
	}

	user, err := uow.UserRepository().GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session user: %w", err)
	}
	return user, nil
}

// CreateSession finds or creates the user linked to discordID and issues a
// new session token for them
func (s *userService) CreateSession(ctx context.Context, discordID int64, username string, ttl time.Duration) (*models.Session, error) {
	username = strings.TrimSpace(username)
	if discordID <= 0 || username == "" {
		return nil, fmt.Errorf("%w: discord id and username are required", ErrInvalidUser)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: session lifetime must be positive", ErrInvalidUser)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if user == nil {
		user, err = uow.UserRepository().Create(ctx, username, &discordID)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	now := s.clock.Now()
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := uow.UserRepository().CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":    user.ID,
		"expires_at": session.ExpiresAt,
	}).Info("Session issued")
	return session, nil
}
