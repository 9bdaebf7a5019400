package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/storage"
)

// IAction is one unit of work run inside a single store transaction.
// Returning an error rolls the transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
