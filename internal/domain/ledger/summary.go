package ledger

import (
	"sort"
)

// Summary holds the income and expense totals of a set of transactions
type Summary struct {
	TotalIncome  int64 `json:"totalIncome"`
	TotalExpense int64 `json:"totalExpense"`
	Balance      int64 `json:"balance"`
	Count        int   `json:"count"`
}

// Summarize totals transactions. Balance is income minus expense.
func Summarize(transactions []Transaction) Summary {
	var summary Summary
	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			summary.TotalIncome += t.Amount
		case TypeExpense:
			summary.TotalExpense += t.Amount
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	summary.Count = len(transactions)
	return summary
}

// SortByDateDesc orders transactions by date, latest first.
// Transactions on the same date keep their relative order.
func SortByDateDesc(transactions []Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date > transactions[j].Date
	})
}
