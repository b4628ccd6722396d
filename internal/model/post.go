package model

import "time"

// Post is an announcement published on a club's feed. Posts belong to exactly
// one club and are cascade-deleted with it.
type Post struct {
	ID        int64     `json:"id"`
	ClubID    int64     `json:"clubId"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
