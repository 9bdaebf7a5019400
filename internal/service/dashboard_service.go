package service

import (
	"context"
)

// Overview is what the dashboard shows.
type Overview struct {
	Summary
	TransactionCount int
	// SeededCategories is how many default categories this call created.
	SeededCategories int
}

// DashboardService builds the dashboard from the category and transaction
// services.
type DashboardService struct {
	categories   *CategoryService
	transactions *TransactionService
}

func NewDashboardService(categories *CategoryService, transactions *TransactionService) *DashboardService {
	return &DashboardService{categories: categories, transactions: transactions}
}

// Overview seeds the default categories when the owner has none, then
// summarizes every owned transaction.
func (s *DashboardService) Overview(ctx context.Context, ownerID string) (*Overview, error) {
	seeded, err := s.categories.EnsureDefaultCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Summary:          Summarize(EntriesFromTransactions(transactions)),
		TransactionCount: len(transactions),
		SeededCategories: seeded,
	}, nil
}
