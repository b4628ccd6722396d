package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/clubmonkey/internal/model"
	"github.com/sakif/clubmonkey/internal/repository"
)

// compile-time check that *PostStore implements repository.PostRepository
var _ repository.PostRepository = (*PostStore)(nil)

// PostStore implements repository.PostRepository over the shared pool.
type PostStore struct {
	conn *sql.DB
}

// Create inserts a post on a club's feed and fills in its assigned ID.
func (s *PostStore) Create(ctx context.Context, post *model.Post) error {
	post.CreatedAt = time.Now()

	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO posts (club_id, content, image_url, created_at)
		 VALUES (?, ?, ?, ?)`,
		post.ClubID,
		post.Content,
		post.ImageURL,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting post for club %d: %w", post.ClubID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading post insert id: %w", err)
	}
	post.ID = id

	return nil
}

// ListByClub returns a club's posts, most recent first. Clients render the
// feed in this order, so ORDER BY created_at DESC is part of the contract.
func (s *PostStore) ListByClub(ctx context.Context, clubID int64) ([]model.Post, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, club_id, content, image_url, created_at
		 FROM posts
		 WHERE club_id = ?
		 ORDER BY created_at DESC, id DESC`,
		clubID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts of club %d: %w", clubID, err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.ClubID, &p.Content, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}

	return posts, nil
}
