package domain

import "time"

// Comment represents a comment attached to a task.
type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
