package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// CategoryAmount is one row of the expense breakdown.
type CategoryAmount struct {
	Category string `json:"category" doc:"Category name"`
	Amount   string `json:"amount" doc:"Total expense in this category"`
}

// SummaryBody is the dashboard payload. Labels and Data are the
// breakdown split into parallel arrays for charting.
type SummaryBody struct {
	TotalIncome       string           `json:"totalIncome" doc:"Sum of income amounts"`
	TotalExpense      string           `json:"totalExpense" doc:"Sum of expense amounts"`
	Balance           string           `json:"balance" doc:"totalIncome minus totalExpense"`
	ExpenseByCategory []CategoryAmount `json:"expenseByCategory" doc:"Expenses per category, largest first"`
	Labels            []string         `json:"labels" doc:"Category names in breakdown order"`
	Data              []string         `json:"data" doc:"Amounts in breakdown order"`
	TransactionCount  int              `json:"transactionCount" doc:"Number of transactions summarized"`
}

// SummaryOutput is the Huma output for the summary endpoint.
type SummaryOutput struct {
	Body SummaryBody
}

type overviewer interface {
	Overview(ctx context.Context, ownerID string) (*service.Overview, error)
}

// Handler handles GET /v1/summary.
type Handler struct {
	DashboardService overviewer
}

func NewHandler(svc overviewer) *Handler {
	return &Handler{DashboardService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary",
		Summary:     "Dashboard summary",
		Description: "Seeds default categories for a new owner, then totals income and expense and groups expenses by category.",
		Tags:        []string{"Dashboard"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "overviewMs")
	overview, err := h.DashboardService.Overview(ctx, ownerID)
	stopTimer()
	if err != nil {
		return nil, httperror.FromError(ctx, err, "build summary")
	}
	logging.AddData(ctx, "transactionCount", overview.TransactionCount)
	if overview.SeededCategories > 0 {
		logging.AddData(ctx, "seededCategories", overview.SeededCategories)
	}

	return &SummaryOutput{Body: fromOverview(overview)}, nil
}

func fromOverview(o *service.Overview) SummaryBody {
	body := SummaryBody{
		TotalIncome:       o.TotalIncome.StringFixed(2),
		TotalExpense:      o.TotalExpense.StringFixed(2),
		Balance:           o.Balance.StringFixed(2),
		ExpenseByCategory: make([]CategoryAmount, len(o.ExpenseByCategory)),
		Labels:            o.Labels(),
		Data:              make([]string, len(o.ExpenseByCategory)),
		TransactionCount:  o.TransactionCount,
	}
	for i, c := range o.ExpenseByCategory {
		amount := c.Amount.StringFixed(2)
		body.ExpenseByCategory[i] = CategoryAmount{Category: c.CategoryName, Amount: amount}
		body.Data[i] = amount
	}
	return body
}
