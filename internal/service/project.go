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

// ProjectService handles project creation, listing, the project-with-author
// view, and team joins.
type ProjectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

func NewProjectService(
	projects repository.ProjectRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{projects: projects, users: users, logger: logger}
}

// ProjectDetails is the project-page view: the project plus its author's
// display name, resolved separately so a deleted author degrades to
// "Unknown" rather than a broken page.
type ProjectDetails struct {
	Project    *model.Project `json:"project"`
	AuthorName string         `json:"author_name"`
}

// Create validates and saves a new project. Status is always set to the
// default for fresh projects regardless of the request payload. The single
// INSERT is atomic — a failed create leaves no partial project behind.
func (s *ProjectService) Create(ctx context.Context, authorID, title, description string, requirements []string) (*model.Project, error) {
	authorID = strings.TrimSpace(authorID)
	title = strings.TrimSpace(title)

	if authorID == "" {
		return nil, apperror.ValidationFailed("authorId", "author ID is required")
	}
	if title == "" {
		return nil, apperror.ValidationFailed("title", "project title is required")
	}

	// The author must be a real user: projects.author_id references users.
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	project := &model.Project{
		AuthorID:     authorID,
		Title:        title,
		Description:  strings.TrimSpace(description),
		Requirements: model.NewTagSet(requirements...),
		Status:       model.DefaultProjectStatus,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		s.logger.Error("failed to create project",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("project created",
		slog.Int64("projectID", project.ID),
		slog.String("authorID", authorID),
	)

	return project, nil
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

// Details returns the project-with-author view. A missing project is
// NotFound; a missing author row is not — the author name degrades to
// "Unknown" because projects outlive deleted accounts.
func (s *ProjectService) Details(ctx context.Context, projectID int64) (*ProjectDetails, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	authorName := "Unknown"
	author, err := s.users.GetByID(ctx, project.AuthorID)
	switch {
	case err == nil:
		authorName = author.Name
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, err
	}

	return &ProjectDetails{Project: project, AuthorName: authorName}, nil
}

// Join registers a user on a project's team.
//
// The project is pre-checked so an unknown project surfaces as NotFound
// distinctly from the duplicate case; the duplicate itself is decided by the
// composite primary key, so two concurrent joins cannot both succeed.
func (s *ProjectService) Join(ctx context.Context, userID string, projectID int64) (*model.Collaboration, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "user ID is required")
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	c := &model.Collaboration{UserID: userID, ProjectID: projectID}
	if err := s.projects.AddCollaborator(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("user joined project",
		slog.String("userID", userID),
		slog.Int64("projectID", projectID),
	)

	return c, nil
}
