package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"Owned categories ordered by name"`
	}
}

type categoryLister interface {
	List(ctx context.Context, ownerID string) ([]service.Category, error)
}

// ListCategoriesHandler handles GET /v1/categories.
type ListCategoriesHandler struct {
	CategoryService categoryLister
}

func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Description: "Returns every category owned by the caller, ordered by name.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "listCategoriesMs")
	categories, err := h.CategoryService.List(ctx, ownerID)
	stopTimer()
	if err != nil {
		return nil, httperror.FromError(ctx, err, "list categories")
	}
	logging.AddData(ctx, "categoryCount", len(categories))

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = fromService(c)
	}
	return out, nil
}
