package registry

import (
	"context"
	"strings"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/resident"
)

// MismatchMessage is reported when a name is not in the resident registry
const MismatchMessage = "name not found in resident registry"

// Source provides the current resident registry
type Source interface {
	Snapshot(ctx context.Context) ([]resident.Resident, error)
}

// ValidateResidentName returns the first resident whose name equals name after
// trimming and case folding, or a RegistryMismatch error.
func ValidateResidentName(name string, registry []resident.Resident) (resident.Resident, error) {
	needle := strings.TrimSpace(name)
	if needle != "" {
		for _, r := range registry {
			if strings.EqualFold(strings.TrimSpace(r.Name), needle) {
				return r, nil
			}
		}
	}
	return resident.Resident{}, errors.NewRegistryMismatchError(MismatchMessage).WithDetail("name", needle)
}

// Validator checks names against a live registry source
type Validator struct {
	source Source
}

// NewValidator creates a new registry validator
func NewValidator(source Source) *Validator {
	return &Validator{source: source}
}

// Validate takes a snapshot of the registry and matches name against it
func (v *Validator) Validate(ctx context.Context, name string) (resident.Resident, error) {
	registry, err := v.source.Snapshot(ctx)
	if err != nil {
		return resident.Resident{}, err
	}
	return ValidateResidentName(name, registry)
}
