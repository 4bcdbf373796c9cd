package types

import "time"

// Announcement is a post published by a user and broadcast to
// connected clients whenever it changes.
type Announcement struct {
	ID          int    `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`

	// FileURL is the object storage key of an optional attachment.
	FileURL string `json:"file_url" db:"file_url"`

	// UserID is the author of the announcement.
	UserID int `json:"user_id" db:"user_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AnnouncementEvent is the domain event published on the event bus
// when an announcement is created, updated or deleted. The transport
// that fans it out to connected clients is an external collaborator.
type AnnouncementEvent struct {
	// Event is one of "created", "updated" or "deleted".
	Event string `json:"event"`

	// Announcement is the post after the write. For deletions only
	// the ID is populated.
	Announcement Announcement `json:"announcement"`
}
