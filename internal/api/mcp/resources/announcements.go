package resources

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/announcement"
	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// AnnouncementLister lists published announcements
type AnnouncementLister interface {
	List(ctx context.Context, sess *session.Session) ([]announcement.Announcement, error)
}

type AnnouncementsResource struct {
	announcements AnnouncementLister
	reader        *session.Session
}

func NewAnnouncementsResource(announcements AnnouncementLister, reader *session.Session) *AnnouncementsResource {
	return &AnnouncementsResource{
		announcements: announcements,
		reader:        reader,
	}
}

func (r *AnnouncementsResource) GetURI() string         { return "smartrt://announcements" }
func (r *AnnouncementsResource) GetName() string        { return "Announcements" }
func (r *AnnouncementsResource) GetDescription() string { return "Published announcements, newest first" }
func (r *AnnouncementsResource) GetMimeType() string    { return mimeJSON }

func (r *AnnouncementsResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	announcements, err := r.announcements.List(ctx, r.reader)
	if err != nil {
		return nil, err
	}
	return jsonContents(r.GetURI(), announcements)
}
