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

// compile-time check that *ClubStore implements repository.ClubRepository
var _ repository.ClubRepository = (*ClubStore)(nil)

// ClubStore implements repository.ClubRepository over the shared pool.
type ClubStore struct {
	conn *sql.DB
}

const clubColumns = `id, name, description, logo_url, primary_color, accent_color, tags, created_at`

// Create inserts a new club and fills in its store-assigned integer ID.
// Theme colors fall back to the defaults when left blank.
func (s *ClubStore) Create(ctx context.Context, club *model.Club) error {
	if club.PrimaryColor == "" {
		club.PrimaryColor = model.DefaultPrimaryColor
	}
	if club.AccentColor == "" {
		club.AccentColor = model.DefaultAccentColor
	}
	club.CreatedAt = time.Now()

	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO clubs (name, description, logo_url, primary_color, accent_color, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		club.Name,
		club.Description,
		club.LogoURL,
		club.PrimaryColor,
		club.AccentColor,
		club.Tags,
		club.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting club %q: %w", club.Name, err)
	}

	// LastInsertId is how AUTOINCREMENT keys get back to the caller.
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading club insert id: %w", err)
	}
	club.ID = id

	return nil
}

// GetByID retrieves a club by its integer ID.
func (s *ClubStore) GetByID(ctx context.Context, id int64) (*model.Club, error) {
	var c model.Club

	err := s.conn.QueryRowContext(ctx,
		`SELECT `+clubColumns+` FROM clubs WHERE id = ?`, id,
	).Scan(
		&c.ID, &c.Name, &c.Description, &c.LogoURL,
		&c.PrimaryColor, &c.AccentColor, &c.Tags, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("club", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting club %d: %w", id, err)
	}

	return &c, nil
}

// List returns the full club catalog in id order. Recommendation results
// preserve this order — the engine applies no ranking of its own.
func (s *ClubStore) List(ctx context.Context) ([]model.Club, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+clubColumns+` FROM clubs ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing clubs: %w", err)
	}
	defer rows.Close()

	return scanClubs(rows)
}

// Delete removes a club. The schema's ON DELETE CASCADE takes the club's
// memberships and posts with it.
func (s *ClubStore) Delete(ctx context.Context, id int64) error {
	result, err := s.conn.ExecContext(ctx, `DELETE FROM clubs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting club %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("club", strconv.FormatInt(id, 10))
	}

	return nil
}

// AddMember inserts a membership row. The composite primary key is the
// concurrency reconciliation point: of two racing joins for the same
// (user, club), exactly one INSERT succeeds and the other surfaces as a
// duplicate conflict.
func (s *ClubStore) AddMember(ctx context.Context, m *model.Membership) error {
	if m.Role == "" {
		m.Role = model.DefaultMemberRole
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO club_members (user_id, club_id, role) VALUES (?, ?, ?)`,
		m.UserID, m.ClubID, m.Role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("membership",
				fmt.Sprintf("user %s in club %d", m.UserID, m.ClubID))
		}
		return fmt.Errorf("sqlite: inserting membership (%s, %d): %w", m.UserID, m.ClubID, err)
	}

	return nil
}

// ClubsOf returns the clubs the user has joined, resolved through the
// club_members join table. An unknown user simply has no memberships, so the
// result is an empty slice, never an error.
func (s *ClubStore) ClubsOf(ctx context.Context, userID string) ([]model.Club, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT c.id, c.name, c.description, c.logo_url,
		        c.primary_color, c.accent_color, c.tags, c.created_at
		 FROM clubs c
		 JOIN club_members m ON m.club_id = c.id
		 WHERE m.user_id = ?
		 ORDER BY c.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing clubs of user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanClubs(rows)
}

func scanClubs(rows *sql.Rows) ([]model.Club, error) {
	clubs := []model.Club{}
	for rows.Next() {
		var c model.Club
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.LogoURL,
			&c.PrimaryColor, &c.AccentColor, &c.Tags, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating clubs: %w", err)
	}
	return clubs, nil
}
