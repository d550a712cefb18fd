package ledger

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by transactions
const DateLayout = "2006-01-02"

// Type tells whether a transaction adds to or takes from the cash balance
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Valid reports whether t is a known transaction type
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Label returns the display label of the type
func (t Type) Label() string {
	switch t {
	case TypeIncome:
		return "Pemasukan"
	case TypeExpense:
		return "Pengeluaran"
	}
	return string(t)
}

// DefaultCategory is used when no category is given
const DefaultCategory = "Iuran Wajib"

// Categories are the suggested transaction categories. Category stays free text.
var Categories = []string{
	"Iuran Wajib",
	"Sumbangan",
	"Keamanan",
	"Kebersihan",
	"Pembangunan",
	"Pemeliharaan",
	"Konsumsi",
	"Lainnya",
}

// Transaction represents an entry of the shared cash ledger
type Transaction struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` //YYYY-MM-DD
	Description string    `json:"description"`
	Amount      int64     `json:"amount"` // rupiah
	Type        Type      `json:"type"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateTransactionRequest represents the data needed to record a transaction
type CreateTransactionRequest struct {
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" validate:"notblank"`
	Amount      int64  `json:"amount" validate:"gte=0"`
	Type        Type   `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Category    string `json:"category"`
}

// UpdateTransactionRequest is a partial update. Nil fields are left unchanged.
type UpdateTransactionRequest struct {
	Date        *string `json:"date,omitempty" validate:"omitnil,datetime=2006-01-02"`
	Description *string `json:"description,omitempty" validate:"omitnil,notblank"`
	Amount      *int64  `json:"amount,omitempty" validate:"omitnil,gte=0"`
	Type        *Type   `json:"type,omitempty" validate:"omitnil,oneof=INCOME EXPENSE"`
	Category    *string `json:"category,omitempty"`
}

// ApplyTo merges the non-nil fields into t
func (req *UpdateTransactionRequest) ApplyTo(t *Transaction) {
	if req.Date != nil {
		t.Date = *req.Date
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Category != nil {
		t.Category = categoryOrDefault(*req.Category)
	}
}

// Filter selects transactions. Empty fields match everything. Date bounds are inclusive.
type Filter struct {
	Type      Type
	StartDate string
	EndDate   string
}

// Match reports whether t satisfies the filter
func (f Filter) Match(t Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	// YYYY-MM-DD strings order the same way as the dates they encode
	if f.StartDate != "" && t.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && t.Date > f.EndDate {
		return false
	}
	return true
}

func categoryOrDefault(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}
