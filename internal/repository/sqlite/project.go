package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/model"
	"github.com/sakif/clubmonkey/internal/repository"
)

// compile-time check that *ProjectStore implements repository.ProjectRepository
var _ repository.ProjectRepository = (*ProjectStore)(nil)

// ProjectStore implements repository.ProjectRepository over the shared pool.
type ProjectStore struct {
	conn *sql.DB
}

const projectColumns = `id, author_id, title, description, requirements, status, created_at`

// Create inserts a new project and fills in its assigned ID. Status defaults
// to "open"; the single INSERT is atomic, so a failed create leaves no row.
func (s *ProjectStore) Create(ctx context.Context, project *model.Project) error {
	if project.Status == "" {
		project.Status = model.DefaultProjectStatus
	}
	project.CreatedAt = time.Now()

	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO projects (author_id, title, description, requirements, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		project.AuthorID,
		project.Title,
		project.Description,
		project.Requirements,
		project.Status,
		project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting project %q: %w", project.Title, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading project insert id: %w", err)
	}
	project.ID = id

	return nil
}

// GetByID retrieves a project by its integer ID.
func (s *ProjectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project

	err := s.conn.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id,
	).Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Description,
		&p.Requirements, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("project", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting project %d: %w", id, err)
	}

	return &p, nil
}

// List returns all projects in id order.
func (s *ProjectStore) List(ctx context.Context) ([]model.Project, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// AddCollaborator inserts a collaboration row. Like club memberships, the
// composite primary key arbitrates concurrent duplicate joins: the second
// INSERT fails and surfaces as a conflict, never a silent double-join.
func (s *ProjectStore) AddCollaborator(ctx context.Context, c *model.Collaboration) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO project_collaborators (user_id, project_id) VALUES (?, ?)`,
		c.UserID, c.ProjectID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("collaboration",
				fmt.Sprintf("user %s on project %d", c.UserID, c.ProjectID))
		}
		return fmt.Errorf("sqlite: inserting collaboration (%s, %d): %w", c.UserID, c.ProjectID, err)
	}

	return nil
}

// AuthoredBy returns the projects the user created.
func (s *ProjectStore) AuthoredBy(ctx context.Context, userID string) ([]model.Project, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE author_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects authored by %s: %w", userID, err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// CollaboratedOnBy returns the projects reachable through the user's
// collaboration rows. Authored projects only appear here if the author also
// joined their own team.
func (s *ProjectStore) CollaboratedOnBy(ctx context.Context, userID string) ([]model.Project, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT p.id, p.author_id, p.title, p.description, p.requirements, p.status, p.created_at
		 FROM projects p
		 JOIN project_collaborators pc ON pc.project_id = p.id
		 WHERE pc.user_id = ?
		 ORDER BY p.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing collaborations of %s: %w", userID, err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// CountCollaborators returns the size of a project's team.
func (s *ProjectStore) CountCollaborators(ctx context.Context, projectID int64) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_collaborators WHERE project_id = ?`,
		projectID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting collaborators of project %d: %w", projectID, err)
	}
	return n, nil
}

func scanProjects(rows *sql.Rows) ([]model.Project, error) {
	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Title, &p.Description,
			&p.Requirements, &p.Status, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating projects: %w", err)
	}
	return projects, nil
}
