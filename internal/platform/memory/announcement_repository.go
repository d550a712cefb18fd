package memory

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/announcement"
	"github.com/hirosato/smartrt/internal/domain/errors"
)

// AnnouncementRepository implements announcement.Repository in memory
type AnnouncementRepository struct {
	items *collection[announcement.Announcement]
}

// NewAnnouncementRepository creates an empty announcement repository
func NewAnnouncementRepository() *AnnouncementRepository {
	return &AnnouncementRepository{
		items: newCollection(func(a announcement.Announcement) string { return a.ID }),
	}
}

// CreateAnnouncement inserts a at the head of the collection
func (repo *AnnouncementRepository) CreateAnnouncement(_ context.Context, a *announcement.Announcement) error {
	repo.items.insert(*a)
	return nil
}

// GetAnnouncement retrieves an announcement by ID
func (repo *AnnouncementRepository) GetAnnouncement(_ context.Context, announcementID string) (*announcement.Announcement, error) {
	a, ok := repo.items.get(announcementID)
	if !ok {
		return nil, errors.NewNotFoundError("announcement not found").WithDetail("id", announcementID)
	}
	return &a, nil
}

// DeleteAnnouncement removes an announcement
func (repo *AnnouncementRepository) DeleteAnnouncement(_ context.Context, announcementID string) error {
	if !repo.items.remove(announcementID) {
		return errors.NewNotFoundError("announcement not found").WithDetail("id", announcementID)
	}
	return nil
}

// ListAnnouncements returns all announcements newest first
func (repo *AnnouncementRepository) ListAnnouncements(_ context.Context) ([]announcement.Announcement, error) {
	return repo.items.snapshot(), nil
}
