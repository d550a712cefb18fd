package letter

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/resident"
)

// Repository defines the interface for the letter request collection.
// Listing returns requests newest first.
type Repository interface {
	CreateLetter(ctx context.Context, r *Request) error
	GetLetter(ctx context.Context, letterID string) (*Request, error)
	UpdateLetter(ctx context.Context, letterID string, apply func(*Request) error) (*Request, error)
	ListLetters(ctx context.Context) ([]Request, error)
}

// NameValidator checks that a name belongs to the resident registry
type NameValidator interface {
	Validate(ctx context.Context, name string) (resident.Resident, error)
}
