package resources

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/resident"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// ResidentLister lists registered residents
type ResidentLister interface {
	List(ctx context.Context, sess *session.Session, filter resident.Filter) ([]resident.Resident, error)
}

// ResidentsResource exposes the resident registry, newest first.
// Reads use the reader session, so only what a resident may see is returned.
type ResidentsResource struct {
	residents ResidentLister
	reader    *session.Session
}

func NewResidentsResource(residents ResidentLister, reader *session.Session) *ResidentsResource {
	return &ResidentsResource{
		residents: residents,
		reader:    reader,
	}
}

func (r *ResidentsResource) GetURI() string         { return "smartrt://residents" }
func (r *ResidentsResource) GetName() string        { return "Residents" }
func (r *ResidentsResource) GetDescription() string { return "Registered residents of the neighborhood" }
func (r *ResidentsResource) GetMimeType() string    { return mimeJSON }

func (r *ResidentsResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	residents, err := r.residents.List(ctx, r.reader, resident.Filter{})
	if err != nil {
		return nil, err
	}
	return jsonContents(r.GetURI(), residents)
}
