package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/clubmonkey/internal/model"
)

// newTestDB returns a DB backed by a fresh in-memory SQLite database —
// fast, isolated, destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, id, email string, prefs ...string) *model.User {
	t.Helper()
	user := &model.User{
		ID:           id,
		Name:         "Test " + id,
		Email:        email,
		PasswordHash: "$2a$04$notarealhashbutgoodenough",
		Preferences:  model.NewTagSet(prefs...),
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestClub(t *testing.T, db *DB, name string, tags ...string) *model.Club {
	t.Helper()
	club := &model.Club{
		Name: name,
		Tags: model.NewTagSet(tags...),
	}
	if err := db.Clubs().Create(context.Background(), club); err != nil {
		t.Fatalf("failed to create test club: %v", err)
	}
	return club
}

func createTestProject(t *testing.T, db *DB, authorID, title string) *model.Project {
	t.Helper()
	project := &model.Project{
		AuthorID:    authorID,
		Title:       title,
		Description: "a test project",
	}
	if err := db.Projects().Create(context.Background(), project); err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

func createTestPost(t *testing.T, db *DB, clubID int64, content string, createdAt time.Time) *model.Post {
	t.Helper()
	post := &model.Post{ClubID: clubID, Content: content}
	if err := db.Posts().Create(context.Background(), post); err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	// Backdate for ordering tests — Create stamps time.Now.
	if !createdAt.IsZero() {
		if _, err := db.conn.Exec(
			`UPDATE posts SET created_at = ? WHERE id = ?`, createdAt, post.ID,
		); err != nil {
			t.Fatalf("failed to backdate post: %v", err)
		}
		post.CreatedAt = createdAt
	}
	return post
}
