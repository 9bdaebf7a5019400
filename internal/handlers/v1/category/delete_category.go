package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// DeleteCategoryOutput is empty; success is a bare 204.
type DeleteCategoryOutput struct{}

type categoryDeleter interface {
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// DeleteCategoryHandler handles DELETE /v1/category/{id}.
type DeleteCategoryHandler struct {
	CategoryService categoryDeleter
}

func NewDeleteCategoryHandler(svc categoryDeleter) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{CategoryService: svc}
}

func (h *DeleteCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/category/{id}",
		Summary:       "Delete category",
		Description:   "Deletes a category. A category still used by transactions cannot be deleted.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteCategoryHandler) handle(ctx context.Context, input *CategoryPathInput) (*DeleteCategoryOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	logging.AddData(ctx, "categoryID", id.String())

	if err := h.CategoryService.Delete(ctx, ownerID, id); err != nil {
		return nil, httperror.FromError(ctx, err, "delete category")
	}
	return &DeleteCategoryOutput{}, nil
}
