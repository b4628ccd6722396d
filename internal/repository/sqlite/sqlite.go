// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite?
// It is a pure-Go translation of SQLite — no CGo, no C compiler, trivially
// cross-compiled, and ":memory:" databases make repository tests fast and
// fully isolated. The driver registers itself with database/sql under the
// name "sqlite" via the blank import below.
//
// Referential integrity is delegated to the engine: the schema declares
// ON DELETE CASCADE on memberships, posts, and collaborations, and
// PRAGMA foreign_keys=ON makes SQLite enforce it. Deleting a club takes its
// memberships and posts with it; deleting a user takes their memberships and
// collaborations. The Go code never re-implements cascades.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. One pool serves all six entity types;
// the per-entity accessors below hand out thin store views that implement
// the repository interfaces. Each request-scoped operation borrows a
// connection via the ctx-aware query methods.
type DB struct {
	conn *sql.DB
}

// Users returns the user store view of this database.
func (db *DB) Users() *UserStore { return &UserStore{conn: db.conn} }

// Clubs returns the club/membership store view of this database.
func (db *DB) Clubs() *ClubStore { return &ClubStore{conn: db.conn} }

// Posts returns the post store view of this database.
func (db *DB) Posts() *PostStore { return &PostStore{conn: db.conn} }

// Projects returns the project/collaboration store view of this database.
func (db *DB) Projects() *ProjectStore { return &ProjectStore{conn: db.conn} }

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// Use ":memory:" for an ephemeral database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection: a pool with more than one
	// connection would see a different (empty) database on each. Pin the pool
	// to a single connection so the schema is visible everywhere.
	if strings.Contains(dbPath, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent readers while a write is in flight — needed for
	// a web server where aggregation reads overlap joins and signups.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. The cascade invariants on
	// memberships, posts, and collaborations depend on this pragma.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Callers should defer this
// immediately after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent,
// so it is safe to run on every startup.
//
// Tag columns (users.preferences, clubs.tags, projects.requirements) are TEXT
// holding a JSON string array; model.TagSet handles the conversion at this
// boundary via driver.Valuer/sql.Scanner.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			image         TEXT NOT NULL DEFAULT '',
			preferences   TEXT NOT NULL DEFAULT '[]',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS clubs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			logo_url      TEXT NOT NULL DEFAULT '',
			primary_color TEXT NOT NULL DEFAULT '#121212',
			accent_color  TEXT NOT NULL DEFAULT '#FF0000',
			tags          TEXT NOT NULL DEFAULT '[]',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS club_members (
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			club_id INTEGER NOT NULL REFERENCES clubs(id) ON DELETE CASCADE,
			role    TEXT NOT NULL DEFAULT 'student',
			PRIMARY KEY (user_id, club_id)
		);

		CREATE TABLE IF NOT EXISTS posts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			club_id    INTEGER NOT NULL REFERENCES clubs(id) ON DELETE CASCADE,
			content    TEXT NOT NULL,
			image_url  TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_posts_club_created
			ON posts(club_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating club tables: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS projects (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			author_id    TEXT NOT NULL REFERENCES users(id),
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			requirements TEXT NOT NULL DEFAULT '[]',
			status       TEXT NOT NULL DEFAULT 'open',
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_projects_author ON projects(author_id);

		CREATE TABLE IF NOT EXISTS project_collaborators (
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, project_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating project tables: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is SQLite's unique/primary-key
// constraint failure. modernc.org/sqlite does not export a typed error for
// this, so the message is the stable signal ("UNIQUE constraint failed: ...").
// The repository methods translate these into apperror.Duplicate so the rest
// of the app never sees driver-level errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
