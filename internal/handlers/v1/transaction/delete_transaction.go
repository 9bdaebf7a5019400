package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// DeleteTransactionOutput is empty; success is a bare 204.
type DeleteTransactionOutput struct{}

type transactionDeleter interface {
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionPathInput) (*DeleteTransactionOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	logging.AddData(ctx, "transactionID", id.String())

	if err := h.TransactionService.Delete(ctx, ownerID, id); err != nil {
		return nil, httperror.FromError(ctx, err, "delete transaction")
	}
	return &DeleteTransactionOutput{}, nil
}
