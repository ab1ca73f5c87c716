package model

import "time"

// Announcement is a notice posted by an administrator, optionally
// scoped to a single building. Announcements are display-only data
// and never influence the reservation engine.
type Announcement struct {
	ID         uint64    // announcements.id
	Title      string    // announcements.title
	Body       string    // announcements.body
	PostedBy   uint64    // announcements.posted_by
	BuildingID *uint64   // announcements.building_id (nullable, nil = campus-wide)
	CreatedAt  time.Time // announcements.created_at
}
