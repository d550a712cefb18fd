package announcement

import (
	"context"
)

// Repository defines the interface for the announcement collection.
// Announcements cannot be edited once published.
type Repository interface {
	CreateAnnouncement(ctx context.Context, a *Announcement) error
	GetAnnouncement(ctx context.Context, announcementID string) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, announcementID string) error
	ListAnnouncements(ctx context.Context) ([]Announcement, error)
}
