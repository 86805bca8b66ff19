package models

import "time"

// Post is a short text published by an account.
type Post struct {
	ID        int64
	Title     string
	Text      string
	AuthorID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
