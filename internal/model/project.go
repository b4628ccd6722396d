package model

import "time"

// DefaultProjectStatus is set on newly created projects. Status is free-form
// text; nothing in the core interprets it beyond storing and returning it.
const DefaultProjectStatus = "open"

// Project is a collaborative student project looking for team members.
// Requirements are the skill tags the author is looking for.
//
// The author relationship (AuthorID) is separate from collaboration:
// authoring is 1—N via this field, while joining a team is N—M via
// Collaboration rows. An author is not automatically a collaborator.
type Project struct {
	ID           int64     `json:"id"`
	AuthorID     string    `json:"authorId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements TagSet    `json:"requirements"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Collaboration records a user joining a project team. The (UserID,
// ProjectID) pair is the primary key; joining the same project twice is
// rejected with a duplicate-key conflict.
type Collaboration struct {
	UserID    string `json:"userId"`
	ProjectID int64  `json:"projectId"`
}
