package category

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name, unique per owner"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

// CategoryPathInput addresses one category.
type CategoryPathInput struct {
	ID string `path:"id" format:"uuid" doc:"Category UUID"`
}

func fromService(c service.Category) Category {
	return Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, httperror.InvalidPath("id", "must be a UUID")
	}
	return id, nil
}
