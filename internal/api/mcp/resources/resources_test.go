package resources_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/smartrt/internal/api/mcp/resources"
	"github.com/hirosato/smartrt/internal/domain/ledger"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/resident"
	"github.com/hirosato/smartrt/internal/domain/session"
)

var reader = &session.Session{ID: "reader", Role: session.RoleResident}

type fakeResidents []resident.Resident

func (f fakeResidents) List(ctx context.Context, sess *session.Session, filter resident.Filter) ([]resident.Resident, error) {
	return f, nil
}

type fakeLedger []ledger.Transaction

func (f fakeLedger) List(ctx context.Context, sess *session.Session, filter ledger.Filter) ([]ledger.Transaction, error) {
	return f, nil
}

type fakeReports struct {
	got report.Filter
}

func (f *fakeReports) List(ctx context.Context, sess *session.Session, filter report.Filter) ([]report.Report, error) {
	f.got = filter
	return []report.Report{{ID: "R1", Title: "Sampah", Status: report.StatusPending}}, nil
}

func TestResidentsResource(t *testing.T) {
	r := resources.NewResidentsResource(fakeResidents{{ID: "1", Name: "Budi Santoso"}}, reader)
	assert.Equal(t, "smartrt://residents", r.GetURI())
	assert.Equal(t, "application/json", r.GetMimeType())

	result, err := r.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "smartrt://residents", result.Contents[0].URI)

	var got []resident.Resident
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Budi Santoso", got[0].Name)
}

func TestTransactionSummaryResource(t *testing.T) {
	var transactions fakeLedger
	for i := 0; i < 12; i++ {
		transactions = append(transactions, ledger.Transaction{ID: fmt.Sprint(i), Type: ledger.TypeIncome, Amount: 10000})
	}
	transactions = append(transactions, ledger.Transaction{ID: "out", Type: ledger.TypeExpense, Amount: 50000})

	result, err := resources.NewTransactionSummaryResource(transactions, reader).Read(context.Background())
	require.NoError(t, err)

	var got struct {
		TotalIncome  int64                `json:"totalIncome"`
		TotalExpense int64                `json:"totalExpense"`
		Balance      int64                `json:"balance"`
		Count        int                  `json:"count"`
		Recent       []ledger.Transaction `json:"recent"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
	assert.Equal(t, int64(120000), got.TotalIncome)
	assert.Equal(t, int64(50000), got.TotalExpense)
	assert.Equal(t, int64(70000), got.Balance)
	assert.Equal(t, 13, got.Count)
	assert.Len(t, got.Recent, 10)
	assert.Equal(t, "0", got.Recent[0].ID)
}

func TestReportsResourceListsActiveOnly(t *testing.T) {
	reports := &fakeReports{}
	r := resources.NewReportsResource(reports, reader)

	result, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, reports.got.ActiveOnly)
	assert.Contains(t, result.Contents[0].Text, `"title": "Sampah"`)
}
