package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// CategoryOutput is the Huma output for endpoints returning one category.
type CategoryOutput struct {
	Body Category
}

type categoryGetter interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*service.Category, error)
}

// GetCategoryHandler handles GET /v1/category/{id}.
type GetCategoryHandler struct {
	CategoryService categoryGetter
}

func NewGetCategoryHandler(svc categoryGetter) *GetCategoryHandler {
	return &GetCategoryHandler{CategoryService: svc}
}

func (h *GetCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/v1/category/{id}",
		Summary:     "Get category",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *GetCategoryHandler) handle(ctx context.Context, input *CategoryPathInput) (*CategoryOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	category, err := h.CategoryService.Get(ctx, ownerID, id)
	if err != nil {
		return nil, httperror.FromError(ctx, err, "get category")
	}
	return &CategoryOutput{Body: fromService(*category)}, nil
}
