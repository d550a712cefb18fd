package memory

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/resident"
)

// ResidentRepository implements resident.Repository in memory
type ResidentRepository struct {
	items *collection[resident.Resident]
}

// NewResidentRepository creates an empty resident repository
func NewResidentRepository() *ResidentRepository {
	return &ResidentRepository{
		items: newCollection(func(r resident.Resident) string { return r.ID }),
	}
}

// CreateResident inserts r at the head of the collection
func (repo *ResidentRepository) CreateResident(_ context.Context, r *resident.Resident) error {
	repo.items.insert(*r)
	return nil
}

// GetResident retrieves a resident by ID
func (repo *ResidentRepository) GetResident(_ context.Context, residentID string) (*resident.Resident, error) {
	r, ok := repo.items.get(residentID)
	if !ok {
		return nil, residentNotFound(residentID)
	}
	return &r, nil
}

// UpdateResident applies a mutation to a stored resident
func (repo *ResidentRepository) UpdateResident(_ context.Context, residentID string, apply func(*resident.Resident) error) (*resident.Resident, error) {
	r, found, err := repo.items.update(residentID, apply)
	if !found {
		return nil, residentNotFound(residentID)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteResident removes a resident
func (repo *ResidentRepository) DeleteResident(_ context.Context, residentID string) error {
	if !repo.items.remove(residentID) {
		return residentNotFound(residentID)
	}
	return nil
}

// ListResidents returns all residents newest first
func (repo *ResidentRepository) ListResidents(_ context.Context) ([]resident.Resident, error) {
	return repo.items.snapshot(), nil
}

func residentNotFound(id string) error {
	return errors.NewNotFoundError("resident not found").WithDetail("id", id)
}
