package resident

import (
	"context"
)

// Repository defines the interface for the resident collection.
// Listing returns residents newest first.
type Repository interface {
	// Insert a resident at the head of the collection
	CreateResident(ctx context.Context, r *Resident) error

	// Get a resident by ID
	GetResident(ctx context.Context, residentID string) (*Resident, error)

	// Apply a mutation to a stored resident. Nothing is stored when apply fails.
	UpdateResident(ctx context.Context, residentID string, apply func(*Resident) error) (*Resident, error)

	// Delete a resident
	DeleteResident(ctx context.Context, residentID string) error

	// List all residents
	ListResidents(ctx context.Context) ([]Resident, error)
}
