package ledger

import (
	"context"
)

// Repository defines the interface for the cash ledger collection.
// Listing returns transactions in insertion order, newest first.
type Repository interface {
	CreateTransaction(ctx context.Context, t *Transaction) error
	GetTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, apply func(*Transaction) error) (*Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	ListTransactions(ctx context.Context) ([]Transaction, error)
}
