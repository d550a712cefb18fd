package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	transactions := []Transaction{
		{ID: "1", Type: TypeIncome, Amount: 500000},
		{ID: "2", Type: TypeExpense, Amount: 150000},
		{ID: "3", Type: TypeIncome, Amount: 0},
		{ID: "4", Type: TypeExpense, Amount: 400000},
	}

	got := Summarize(transactions)
	assert.Equal(t, int64(500000), got.TotalIncome)
	assert.Equal(t, int64(550000), got.TotalExpense)
	assert.Equal(t, int64(-50000), got.Balance)
	assert.Equal(t, 4, got.Count)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSortByDateDesc(t *testing.T) {
	transactions := []Transaction{
		{ID: "a", Date: "2024-05-01"},
		{ID: "b", Date: "2024-05-20"},
		{ID: "c", Date: "2024-05-01"},
		{ID: "d", Date: "2023-12-31"},
	}

	SortByDateDesc(transactions)

	ids := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids)
}

func TestFilter_Match(t *testing.T) {
	tx := Transaction{Date: "2024-05-10", Type: TypeIncome}

	assert.True(t, Filter{}.Match(tx))
	assert.True(t, Filter{Type: TypeIncome}.Match(tx))
	assert.False(t, Filter{Type: TypeExpense}.Match(tx))
	assert.True(t, Filter{StartDate: "2024-05-10", EndDate: "2024-05-10"}.Match(tx))
	assert.False(t, Filter{StartDate: "2024-05-11"}.Match(tx))
	assert.False(t, Filter{EndDate: "2024-05-09"}.Match(tx))
}
