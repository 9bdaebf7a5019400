package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// CategoryBody is the request body for creating or renaming a category.
type CategoryBody struct {
	Name string `json:"name" maxLength:"100" doc:"Category name"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	Body CategoryBody
}

type categoryCreator interface {
	Create(ctx context.Context, ownerID, name string) (*service.Category, error)
}

// CreateCategoryHandler handles POST /v1/category.
type CreateCategoryHandler struct {
	CategoryService categoryCreator
}

func NewCreateCategoryHandler(svc categoryCreator) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create category",
		Description:   "Creates a category. Names are unique per owner.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "createCategoryMs")
	category, err := h.CategoryService.Create(ctx, ownerID, input.Body.Name)
	stopTimer()
	if err != nil {
		return nil, httperror.FromError(ctx, err, "create category")
	}
	logging.AddData(ctx, "categoryID", category.ID.String())

	return &CategoryOutput{Body: fromService(*category)}, nil
}
