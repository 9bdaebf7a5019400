package service

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SummaryEntry is the flat view of one transaction the aggregation needs.
type SummaryEntry struct {
	Amount       decimal.Decimal
	Type         TransactionType
	CategoryName string
}

// CategoryAmount is one row of the expense breakdown.
type CategoryAmount struct {
	CategoryName string
	Amount       decimal.Decimal
}

// Summary is the dashboard aggregate.
type Summary struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal
	ExpenseByCategory []CategoryAmount
}

// Labels returns the breakdown's category names in breakdown order.
func (s Summary) Labels() []string {
	labels := make([]string, len(s.ExpenseByCategory))
	for i, c := range s.ExpenseByCategory {
		labels[i] = c.CategoryName
	}
	return labels
}

// Data returns the breakdown's amounts in breakdown order.
func (s Summary) Data() []decimal.Decimal {
	data := make([]decimal.Decimal, len(s.ExpenseByCategory))
	for i, c := range s.ExpenseByCategory {
		data[i] = c.Amount
	}
	return data
}

// Summarize totals income and expense and groups expenses by category
// name, largest first. Categories with equal totals keep the order in
// which they first appear in entries. It has no side effects.
func Summarize(entries []SummaryEntry) Summary {
	summary := Summary{
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		ExpenseByCategory: []CategoryAmount{},
	}

	index := make(map[string]int)
	for _, entry := range entries {
		switch entry.Type {
		case TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(entry.Amount)
		case TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(entry.Amount)
			i, ok := index[entry.CategoryName]
			if !ok {
				i = len(summary.ExpenseByCategory)
				index[entry.CategoryName] = i
				summary.ExpenseByCategory = append(summary.ExpenseByCategory, CategoryAmount{
					CategoryName: entry.CategoryName,
					Amount:       decimal.Zero,
				})
			}
			summary.ExpenseByCategory[i].Amount = summary.ExpenseByCategory[i].Amount.Add(entry.Amount)
		}
	}

	sort.SliceStable(summary.ExpenseByCategory, func(i, j int) bool {
		return summary.ExpenseByCategory[i].Amount.GreaterThan(summary.ExpenseByCategory[j].Amount)
	})
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}

// EntriesFromTransactions flattens joined transactions for Summarize.
func EntriesFromTransactions(transactions []Transaction) []SummaryEntry {
	entries := make([]SummaryEntry, len(transactions))
	for i, t := range transactions {
		entries[i] = SummaryEntry{
			Amount:       t.Amount,
			Type:         t.Type,
			CategoryName: t.Category.Name,
		}
	}
	return entries
}
