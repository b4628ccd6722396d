package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/model"
	"github.com/sakif/clubmonkey/internal/repository"
)

// ClubService handles clubs, memberships, and the standalone recommendation
// path. It is also the relationship resolver for the club side: given a user
// it resolves joined clubs, given a club it resolves its post feed.
type ClubService struct {
	clubs  repository.ClubRepository
	posts  repository.PostRepository
	users  repository.UserRepository
	logger *slog.Logger
}

func NewClubService(
	clubs repository.ClubRepository,
	posts repository.PostRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *ClubService {
	return &ClubService{clubs: clubs, posts: posts, users: users, logger: logger}
}

// ClubDetails is the club-page view: the club plus its feed, newest post
// first.
type ClubDetails struct {
	Club  *model.Club  `json:"club"`
	Posts []model.Post `json:"posts"`
}

// Create validates and saves a new club.
func (s *ClubService) Create(ctx context.Context, club *model.Club) (*model.Club, error) {
	club.Name = strings.TrimSpace(club.Name)
	if club.Name == "" {
		return nil, apperror.ValidationFailed("name", "club name is required")
	}

	if err := s.clubs.Create(ctx, club); err != nil {
		s.logger.Error("failed to create club",
			slog.String("name", club.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("club created",
		slog.Int64("clubID", club.ID),
		slog.String("name", club.Name),
	)

	return club, nil
}

// List returns the full club catalog.
func (s *ClubService) List(ctx context.Context) ([]model.Club, error) {
	return s.clubs.List(ctx)
}

// Details returns the club-with-posts view. NotFound when the club does not
// exist; the posts come back most recent first per the feed contract.
func (s *ClubService) Details(ctx context.Context, clubID int64) (*ClubDetails, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	return &ClubDetails{Club: club, Posts: posts}, nil
}

// Delete removes a club; its memberships and posts cascade with it.
func (s *ClubService) Delete(ctx context.Context, clubID int64) error {
	if err := s.clubs.Delete(ctx, clubID); err != nil {
		return err
	}
	s.logger.Info("club deleted", slog.Int64("clubID", clubID))
	return nil
}

// Join adds a user to a club with the given role ("student" when empty).
// The club must exist — NotFound otherwise; a second join of the same pair
// is a Conflict.
func (s *ClubService) Join(ctx context.Context, userID string, clubID int64, role string) (*model.Membership, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "user ID is required")
	}

	if _, err := s.clubs.GetByID(ctx, clubID); err != nil {
		return nil, err
	}

	m := &model.Membership{UserID: userID, ClubID: clubID, Role: strings.TrimSpace(role)}
	if err := s.clubs.AddMember(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("user joined club",
		slog.String("userID", userID),
		slog.Int64("clubID", clubID),
		slog.String("role", m.Role),
	)

	return m, nil
}

// ClubsOf resolves a user's joined clubs. Unknown users get an empty slice,
// not an error.
func (s *ClubService) ClubsOf(ctx context.Context, userID string) ([]model.Club, error) {
	return s.clubs.ClubsOf(ctx, userID)
}

// CreatePost publishes a post on a club's feed. The club must exist.
func (s *ClubService) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	if strings.TrimSpace(post.Content) == "" {
		return nil, apperror.ValidationFailed("content", "post content is required")
	}

	if _, err := s.clubs.GetByID(ctx, post.ClubID); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		slog.Int64("postID", post.ID),
		slog.Int64("clubID", post.ClubID),
	)

	return post, nil
}

// RecommendedFor is the standalone recommendation path.
//
// Policy: when the user is unknown OR has an empty preference set, there is
// no signal to filter on and the WHOLE catalog is returned unfiltered. This
// is intentionally different from the profile aggregation path, which
// returns an empty recommendation list for empty preferences — do not unify
// the two without a product decision.
func (s *ClubService) RecommendedFor(ctx context.Context, userID string) ([]model.Club, error) {
	clubs, err := s.clubs.List(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return clubs, nil
		}
		return nil, err
	}
	if user.Preferences.IsEmpty() {
		return clubs, nil
	}

	return Recommend(user.Preferences, clubs, nil), nil
}
