package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// SeedCategoriesOutput reports how many default categories were created.
type SeedCategoriesOutput struct {
	Body struct {
		Created int `json:"created" doc:"Default categories created by this call, 0 when the owner already had categories"`
	}
}

type categorySeeder interface {
	EnsureDefaultCategories(ctx context.Context, ownerID string) (int, error)
}

// SeedCategoriesHandler handles POST /v1/category/defaults.
type SeedCategoriesHandler struct {
	CategoryService categorySeeder
}

func NewSeedCategoriesHandler(svc categorySeeder) *SeedCategoriesHandler {
	return &SeedCategoriesHandler{CategoryService: svc}
}

func (h *SeedCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "seed-categories",
		Method:      http.MethodPost,
		Path:        "/v1/category/defaults",
		Summary:     "Seed default categories",
		Description: "Creates Food, Rent, Transport, Utilities and Salary when the caller has no categories yet.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *SeedCategoriesHandler) handle(ctx context.Context, _ *struct{}) (*SeedCategoriesOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}

	created, err := h.CategoryService.EnsureDefaultCategories(ctx, ownerID)
	if err != nil {
		return nil, httperror.FromError(ctx, err, "seed categories")
	}
	logging.AddData(ctx, "seededCategories", created)

	out := &SeedCategoriesOutput{}
	out.Body.Created = created
	return out, nil
}
