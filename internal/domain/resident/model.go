package resident

import (
	"strings"
	"time"
)

// Status is the residency status of a household member
type Status string

const (
	StatusPermanent Status = "PERMANENT"
	StatusTemporary Status = "TEMPORARY"
	StatusMoved     Status = "MOVED"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPermanent, StatusTemporary, StatusMoved:
		return true
	}
	return false
}

// Label returns the display label of the status
func (s Status) Label() string {
	switch s {
	case StatusPermanent:
		return "Tetap"
	case StatusTemporary:
		return "Kontrak/Kos"
	case StatusMoved:
		return "Pindah"
	}
	return string(s)
}

// DefaultPhone is stored when no phone number is given
const DefaultPhone = "-"

// Resident represents an entry of the resident registry
type Resident struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Status         Status    `json:"status"`
	FamilyMembers  int       `json:"familyMembers"`
	IsHeadOfFamily bool      `json:"isHeadOfFamily"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateResidentRequest represents the data needed to register a resident
type CreateResidentRequest struct {
	Name           string `json:"name" validate:"notblank"`
	Address        string `json:"address" validate:"notblank"`
	Phone          string `json:"phone"`
	Status         Status `json:"status" validate:"omitempty,oneof=PERMANENT TEMPORARY MOVED"`
	FamilyMembers  int    `json:"familyMembers" validate:"min=1"`
	IsHeadOfFamily bool   `json:"isHeadOfFamily"`
}

// UpdateResidentRequest is a partial update. Nil fields are left unchanged.
type UpdateResidentRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitnil,notblank"`
	Address        *string `json:"address,omitempty" validate:"omitnil,notblank"`
	Phone          *string `json:"phone,omitempty"`
	Status         *Status `json:"status,omitempty" validate:"omitnil,oneof=PERMANENT TEMPORARY MOVED"`
	FamilyMembers  *int    `json:"familyMembers,omitempty" validate:"omitnil,min=1"`
	IsHeadOfFamily *bool   `json:"isHeadOfFamily,omitempty"`
}

// ApplyTo merges the non-nil fields into r
func (req *UpdateResidentRequest) ApplyTo(r *Resident) {
	if req.Name != nil {
		r.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		r.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		r.Phone = phoneOrDefault(*req.Phone)
	}
	if req.Status != nil {
		r.Status = *req.Status
	}
	if req.FamilyMembers != nil {
		r.FamilyMembers = *req.FamilyMembers
	}
	if req.IsHeadOfFamily != nil {
		r.IsHeadOfFamily = *req.IsHeadOfFamily
	}
}

// Filter selects residents for listing
type Filter struct {
	// Query is matched case-insensitively against name and address
	Query  string
	Status Status
}

// Match reports whether r satisfies the filter
func (f Filter) Match(r Resident) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Address), q)
}

func phoneOrDefault(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return DefaultPhone
	}
	return phone
}
