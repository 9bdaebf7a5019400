package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// RenameCategoryInput is the Huma input for renaming a category.
type RenameCategoryInput struct {
	ID   string `path:"id" format:"uuid" doc:"Category UUID"`
	Body CategoryBody
}

type categoryRenamer interface {
	Rename(ctx context.Context, ownerID string, id uuid.UUID, name string) (*service.Category, error)
}

// RenameCategoryHandler handles PUT /v1/category/{id}.
type RenameCategoryHandler struct {
	CategoryService categoryRenamer
}

func NewRenameCategoryHandler(svc categoryRenamer) *RenameCategoryHandler {
	return &RenameCategoryHandler{CategoryService: svc}
}

func (h *RenameCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "rename-category",
		Method:      http.MethodPut,
		Path:        "/v1/category/{id}",
		Summary:     "Rename category",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *RenameCategoryHandler) handle(ctx context.Context, input *RenameCategoryInput) (*CategoryOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	logging.AddData(ctx, "categoryID", id.String())

	category, err := h.CategoryService.Rename(ctx, ownerID, id, input.Body.Name)
	if err != nil {
		return nil, httperror.FromError(ctx, err, "rename category")
	}
	return &CategoryOutput{Body: fromService(*category)}, nil
}
