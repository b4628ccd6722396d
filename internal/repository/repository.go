// Package repository defines the storage interfaces consumed by the service
// layer. The concrete implementation lives in repository/sqlite; services only
// ever see these interfaces, so tests can substitute in-memory mocks and the
// storage engine can change without touching business logic.
package repository

import (
	"context"

	"github.com/sakif/clubmonkey/internal/model"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns apperror.ErrConflict (wrapped) if
	// the email is already registered.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// UpdatePreferences replaces the user's preference tag set.
	// Returns apperror.ErrNotFound if the user does not exist.
	UpdatePreferences(ctx context.Context, id string, prefs model.TagSet) error
}

// ClubRepository persists clubs and club memberships.
type ClubRepository interface {
	Create(ctx context.Context, club *model.Club) error
	GetByID(ctx context.Context, id int64) (*model.Club, error)
	List(ctx context.Context) ([]model.Club, error)
	// Delete removes a club. Memberships and posts cascade with it.
	Delete(ctx context.Context, id int64) error
	// AddMember inserts a membership row. Returns apperror.ErrConflict
	// (wrapped) if the (user, club) pair already exists.
	AddMember(ctx context.Context, m *model.Membership) error
	// ClubsOf returns the clubs the user has joined, empty when none —
	// an unknown user id is not an error, just an empty result.
	ClubsOf(ctx context.Context, userID string) ([]model.Club, error)
}

// PostRepository persists club feed posts.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// ListByClub returns a club's posts ordered newest first. The ordering
	// is part of the API contract, not an implementation detail.
	ListByClub(ctx context.Context, clubID int64) ([]model.Post, error)
}

// ProjectRepository persists projects and project collaborations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	// AddCollaborator inserts a collaboration row. Returns
	// apperror.ErrConflict (wrapped) if the pair already exists.
	AddCollaborator(ctx context.Context, c *model.Collaboration) error
	AuthoredBy(ctx context.Context, userID string) ([]model.Project, error)
	CollaboratedOnBy(ctx context.Context, userID string) ([]model.Project, error)
	CountCollaborators(ctx context.Context, projectID int64) (int, error)
}
