package service

import (
	"context"
	"log/slog"

	"github.com/sakif/clubmonkey/internal/model"
	"github.com/sakif/clubmonkey/internal/repository"
)

// ProfileService composes the relationship resolver and the recommendation
// engine into the single profile snapshot the frontend renders.
type ProfileService struct {
	users    repository.UserRepository
	clubs    repository.ClubRepository
	projects repository.ProjectRepository
	logger   *slog.Logger
}

func NewProfileService(
	users repository.UserRepository,
	clubs repository.ClubRepository,
	projects repository.ProjectRepository,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{users: users, clubs: clubs, projects: projects, logger: logger}
}

// Profile is one consistent snapshot of a user's relationships.
//
// Invariant: Clubs and RecommendedClubs are disjoint — a club the user has
// already joined is excluded from recommendations no matter how well its
// tags match.
type Profile struct {
	User                  *model.User     `json:"user"`
	Clubs                 []model.Club    `json:"clubs"`
	RecommendedClubs      []model.Club    `json:"recommended_clubs"`
	PostedProjects        []model.Project `json:"posted_projects"`
	CollaboratingProjects []model.Project `json:"collaborating_projects"`
}

// Aggregate builds the profile snapshot for userID. NotFound when no such
// user exists.
//
// Unlike the standalone recommendation endpoint, an empty preference set
// here yields an EMPTY recommendation list: Recommend is called
// unconditionally and intersecting with the empty set matches nothing. That
// asymmetry is observed product behavior — see RecommendedFor.
func (s *ProfileService) Aggregate(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	joined, err := s.clubs.ClubsOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	authored, err := s.projects.AuthoredBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	collaborating, err := s.projects.CollaboratedOnBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.clubs.List(ctx)
	if err != nil {
		return nil, err
	}

	// Joined clubs are excluded up front, which is what keeps Clubs and
	// RecommendedClubs mutually exclusive.
	exclude := make(map[int64]bool, len(joined))
	for _, c := range joined {
		exclude[c.ID] = true
	}
	recommended := Recommend(user.Preferences, catalog, exclude)

	s.logger.Debug("profile aggregated",
		slog.String("userID", userID),
		slog.Int("clubs", len(joined)),
		slog.Int("recommended", len(recommended)),
	)

	return &Profile{
		User:                  user,
		Clubs:                 joined,
		RecommendedClubs:      recommended,
		PostedProjects:        authored,
		CollaboratingProjects: collaborating,
	}, nil
}
