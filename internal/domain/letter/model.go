package letter

import (
	"strings"
	"time"
)

// Status is the processing state of a letter request
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Label returns the display label of the status
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Menunggu"
	case StatusApproved:
		return "Disetujui"
	case StatusRejected:
		return "Ditolak"
	}
	return string(s)
}

// Purposes are the suggested purposes of a reference letter
var Purposes = []string{
	"Pembuatan KTP Baru",
	"Pengurusan SKCK",
	"Keterangan Domisili",
	"Keterangan Belum Menikah",
	"Pengurusan Akta Kelahiran",
	"Lainnya",
}

// Request represents a reference letter requested by a resident.
// ResidentAddress is copied from the registry when the request is created.
type Request struct {
	ID              string    `json:"id"`
	ResidentName    string    `json:"residentName"`
	ResidentAddress string    `json:"residentAddress"`
	Purpose         string    `json:"purpose"`
	Date            string    `json:"date"` //YYYY-MM-DD
	Status          Status    `json:"status"`
	Content         string    `json:"content,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateLetterRequest represents the data needed to request a letter
type CreateLetterRequest struct {
	ResidentName string `json:"residentName" validate:"notblank"`
	Purpose      string `json:"purpose" validate:"notblank"`
}

// ApproveRequest approves a letter with its final content
type ApproveRequest struct {
	Content string `json:"content"`
}

// Printout is the printable rendition of an approved letter
type Printout struct {
	LetterID        string `json:"letterId"`
	ResidentName    string `json:"residentName"`
	ResidentAddress string `json:"residentAddress"`
	Purpose         string `json:"purpose"`
	Date            string `json:"date"`
	AuthorityName   string `json:"authorityName"`
	Content         string `json:"content"`
}

// Filter selects letter requests for listing
type Filter struct {
	// Query is matched case-insensitively against resident name and purpose
	Query  string
	Status Status
}

// Match reports whether r satisfies the filter
func (f Filter) Match(r Request) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.ResidentName), q) || strings.Contains(strings.ToLower(r.Purpose), q)
}
