// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account on the platform.
//
// WHY ID string (not int64 like Club/Project)?
// User IDs are supplied by the caller at signup — the web frontend mints its
// own opaque identifiers — so they are stored verbatim as TEXT. When a signup
// request omits the id, the repository generates an xid instead. Club, Post,
// and Project IDs are store-assigned integers.
//
// WHY PasswordHash with json:"-"?
// The credential is stored as a bcrypt hash and must never appear in any API
// response, regardless of which endpoint serializes a User. The json tag
// enforces that in one place instead of relying on every handler to strip it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // unique across all users
	PasswordHash string    `json:"-"`
	Image        string    `json:"image"`       // avatar URL, may be empty
	Preferences  TagSet    `json:"preferences"` // interest tags, the recommendation signal
	CreatedAt    time.Time `json:"createdAt"`
}
