package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/smartrt/internal/common/utils"
	"github.com/hirosato/smartrt/internal/domain/session"
	"github.com/hirosato/smartrt/pkg/validator"
)

// Service provides cash ledger business logic
type Service struct {
	repo      Repository
	validator validator.Validator
	now       func() time.Time
}

// NewService creates a new ledger service
func NewService(repo Repository, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		validator: v,
		now:       time.Now,
	}
}

// Create records a new transaction. The date defaults to today.
func (s *Service) Create(ctx context.Context, sess *session.Session, req *CreateTransactionRequest) (*Transaction, error) {
	if err := sess.Require(session.EntityTransaction, session.ActionCreate); err != nil {
		return nil, err
	}

	// Validate request fields
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := req.Date
	if date == "" {
		date = s.now().Format(DateLayout)
	}

	t := &Transaction{
		ID:          ulid.Make().String(),
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    categoryOrDefault(req.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Get retrieves a transaction by ID
func (s *Service) Get(ctx context.Context, sess *session.Session, transactionID string) (*Transaction, error) {
	if err := sess.Require(session.EntityTransaction, session.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetTransaction(ctx, transactionID)
}

// Update merges the patch into an existing transaction
func (s *Service) Update(ctx context.Context, sess *session.Session, transactionID string, req *UpdateTransactionRequest) (*Transaction, error) {
	if err := sess.Require(session.EntityTransaction, session.ActionUpdate); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	return s.repo.UpdateTransaction(ctx, transactionID, func(t *Transaction) error {
		req.ApplyTo(t)
		t.UpdatedAt = s.now().UTC()
		return nil
	})
}

// Delete removes a transaction
func (s *Service) Delete(ctx context.Context, sess *session.Session, transactionID string) error {
	if err := sess.Require(session.EntityTransaction, session.ActionDelete); err != nil {
		return err
	}
	return s.repo.DeleteTransaction(ctx, transactionID)
}

// List returns transactions matching the filter, latest date first
func (s *Service) List(ctx context.Context, sess *session.Session, filter Filter) ([]Transaction, error) {
	if err := sess.Require(session.EntityTransaction, session.ActionRead); err != nil {
		return nil, err
	}

	// Validate date bounds
	if err := utils.ValidateDateRange(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}

	all, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(all))
	for _, t := range all {
		if filter.Match(t) {
			transactions = append(transactions, t)
		}
	}

	SortByDateDesc(transactions)
	return transactions, nil
}

// Summary totals the transactions matching the filter
func (s *Service) Summary(ctx context.Context, sess *session.Session, filter Filter) (Summary, error) {
	transactions, err := s.List(ctx, sess, filter)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(transactions), nil
}

// Balance returns income minus expense over the whole ledger
func (s *Service) Balance(ctx context.Context, sess *session.Session) (int64, error) {
	summary, err := s.Summary(ctx, sess, Filter{})
	if err != nil {
		return 0, err
	}
	return summary.Balance, nil
}
