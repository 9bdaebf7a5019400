package service

import (
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Category    *CategoryService
	Transaction *TransactionService
	Dashboard   *DashboardService
}

// NewService wires the services over one store. Writes go through op.
func NewService(store *storage.Storage, op operator.IProcessor) *Service {
	categories := NewCategoryService(store, op)
	transactions := NewTransactionService(store, op)
	return &Service{
		Category:    categories,
		Transaction: transactions,
		Dashboard:   NewDashboardService(categories, transactions),
	}
}
