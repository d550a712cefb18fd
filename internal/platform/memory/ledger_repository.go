package memory

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/ledger"
)

// TransactionRepository implements ledger.Repository in memory
type TransactionRepository struct {
	items *collection[ledger.Transaction]
}

// NewTransactionRepository creates an empty transaction repository
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		items: newCollection(func(t ledger.Transaction) string { return t.ID }),
	}
}

// CreateTransaction inserts t at the head of the collection
func (repo *TransactionRepository) CreateTransaction(_ context.Context, t *ledger.Transaction) error {
	repo.items.insert(*t)
	return nil
}

// GetTransaction retrieves a transaction by ID
func (repo *TransactionRepository) GetTransaction(_ context.Context, transactionID string) (*ledger.Transaction, error) {
	t, ok := repo.items.get(transactionID)
	if !ok {
		return nil, transactionNotFound(transactionID)
	}
	return &t, nil
}

// UpdateTransaction applies a mutation to a stored transaction
func (repo *TransactionRepository) UpdateTransaction(_ context.Context, transactionID string, apply func(*ledger.Transaction) error) (*ledger.Transaction, error) {
	t, found, err := repo.items.update(transactionID, apply)
	if !found {
		return nil, transactionNotFound(transactionID)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTransaction removes a transaction
func (repo *TransactionRepository) DeleteTransaction(_ context.Context, transactionID string) error {
	if !repo.items.remove(transactionID) {
		return transactionNotFound(transactionID)
	}
	return nil
}

// ListTransactions returns all transactions in insertion order, newest first
func (repo *TransactionRepository) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
	return repo.items.snapshot(), nil
}

func transactionNotFound(id string) error {
	return errors.NewNotFoundError("transaction not found").WithDetail("id", id)
}
