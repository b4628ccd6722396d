package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/model"
	"github.com/sakif/clubmonkey/internal/repository"
)

// UserService handles user listing and preference updates.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// GetByID returns a single user, NotFound when the id is unknown.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	return s.users.GetByID(ctx, id)
}

// UpdatePreferences replaces a user's preference tag set and returns the
// updated record. The incoming interests are a sequence on the wire; NewTagSet
// collapses duplicates so the stored value is a proper set.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, interests []string) (*model.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "user ID is required")
	}

	prefs := model.NewTagSet(interests...)
	if err := s.users.UpdatePreferences(ctx, userID, prefs); err != nil {
		return nil, err
	}

	s.logger.Info("preferences updated",
		slog.String("userID", userID),
		slog.Int("tags", len(prefs)),
	)

	return s.users.GetByID(ctx, userID)
}
