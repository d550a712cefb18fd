package report

import (
	"time"
)

// Status is the handling state of a citizen report
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Label returns the display label of the status
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Menunggu"
	case StatusInProgress:
		return "Diproses"
	case StatusResolved:
		return "Selesai"
	}
	return string(s)
}

// Report represents a complaint or issue filed by a resident
type Report struct {
	ID           string    `json:"id"`
	ReporterName string    `json:"reporterName"`
	Date         string    `json:"date"` //YYYY-MM-DD
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateReportRequest represents the data needed to file a report
type CreateReportRequest struct {
	ReporterName string `json:"reporterName" validate:"notblank"`
	Title        string `json:"title" validate:"notblank"`
	Description  string `json:"description" validate:"notblank"`
}

// UpdateStatusRequest moves a report to another status
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=PENDING IN_PROGRESS RESOLVED"`
}

// Filter selects reports for listing
type Filter struct {
	Status Status
	// ActiveOnly keeps reports that are not resolved
	ActiveOnly bool
}

// Match reports whether r satisfies the filter
func (f Filter) Match(r Report) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.ActiveOnly && r.Status == StatusResolved {
		return false
	}
	return true
}

// CountActive counts reports whose status is not resolved
func CountActive(reports []Report) int {
	count := 0
	for _, r := range reports {
		if r.Status != StatusResolved {
			count++
		}
	}
	return count
}
