package model

import "time"

// Default club theme colors, applied when a create request leaves them blank.
const (
	DefaultPrimaryColor = "#121212"
	DefaultAccentColor  = "#FF0000"
)

// Club represents a campus club or society.
//
// Tags are the club's topic labels ("robotics", "chess", ...). They are
// free-form strings — there is no normalized tag entity — and they are the
// join key for recommendation: a club is recommended to a user when its Tags
// intersect the user's Preferences.
type Club struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	LogoURL      string    `json:"logoUrl"`
	PrimaryColor string    `json:"primaryColor"`
	AccentColor  string    `json:"accentColor"`
	Tags         TagSet    `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Membership records a user's participation in a club.
//
// The (UserID, ClubID) pair is the primary key — a user joins a club at most
// once, and the store rejects a second join with a duplicate-key conflict.
// Deleting either side cascades to the membership row.
type Membership struct {
	UserID string `json:"userId"`
	ClubID int64  `json:"clubId"`
	Role   string `json:"role"` // defaults to "student"
}

// DefaultMemberRole is the role assigned when a join request names none.
const DefaultMemberRole = "student"
