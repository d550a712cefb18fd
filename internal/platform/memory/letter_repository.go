package memory

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/letter"
)

// LetterRepository implements letter.Repository in memory
type LetterRepository struct {
	items *collection[letter.Request]
}

// NewLetterRepository creates an empty letter repository
func NewLetterRepository() *LetterRepository {
	return &LetterRepository{
		items: newCollection(func(r letter.Request) string { return r.ID }),
	}
}

// CreateLetter inserts r at the head of the collection
func (repo *LetterRepository) CreateLetter(_ context.Context, r *letter.Request) error {
	repo.items.insert(*r)
	return nil
}

// GetLetter retrieves a letter request by ID
func (repo *LetterRepository) GetLetter(_ context.Context, letterID string) (*letter.Request, error) {
	r, ok := repo.items.get(letterID)
	if !ok {
		return nil, letterNotFound(letterID)
	}
	return &r, nil
}

// UpdateLetter applies a mutation to a stored letter request
func (repo *LetterRepository) UpdateLetter(_ context.Context, letterID string, apply func(*letter.Request) error) (*letter.Request, error) {
	r, found, err := repo.items.update(letterID, apply)
	if !found {
		return nil, letterNotFound(letterID)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListLetters returns all letter requests newest first
func (repo *LetterRepository) ListLetters(_ context.Context) ([]letter.Request, error) {
	return repo.items.snapshot(), nil
}

func letterNotFound(id string) error {
	return errors.NewNotFoundError("letter request not found").WithDetail("id", id)
}
