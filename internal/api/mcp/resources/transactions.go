package resources

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/ledger"
	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// LedgerReader lists transactions
type LedgerReader interface {
	List(ctx context.Context, sess *session.Session, filter ledger.Filter) ([]ledger.Transaction, error)
}

type transactionSummary struct {
	ledger.Summary
	Recent []ledger.Transaction `json:"recent"`
}

// recentTransactions is how many of the latest transactions the summary carries
const recentTransactions = 10

type TransactionSummaryResource struct {
	ledger LedgerReader
	reader *session.Session
}

func NewTransactionSummaryResource(l LedgerReader, reader *session.Session) *TransactionSummaryResource {
	return &TransactionSummaryResource{
		ledger: l,
		reader: reader,
	}
}

func (r *TransactionSummaryResource) GetURI() string  { return "smartrt://transactions/summary" }
func (r *TransactionSummaryResource) GetName() string { return "Treasury Summary" }
func (r *TransactionSummaryResource) GetDescription() string {
	return "Total income, total expense and balance of the neighborhood treasury with the latest transactions"
}
func (r *TransactionSummaryResource) GetMimeType() string { return mimeJSON }

func (r *TransactionSummaryResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	transactions, err := r.ledger.List(ctx, r.reader, ledger.Filter{})
	if err != nil {
		return nil, err
	}

	summary := transactionSummary{Summary: ledger.Summarize(transactions)}
	if len(transactions) > recentTransactions {
		transactions = transactions[:recentTransactions]
	}
	summary.Recent = transactions

	return jsonContents(r.GetURI(), summary)
}
