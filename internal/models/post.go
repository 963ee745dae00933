package models

import "time"

// Post represents a blog post. AuthorID is fixed at creation; only the
// matching authenticated user may change the mutable fields.
type Post struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	Content        string    `json:"content"`
	Cover          string    `json:"cover,omitempty"` // public /uploads/ path, empty when no cover
	AuthorID       int64     `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
