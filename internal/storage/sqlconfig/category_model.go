package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Category represents a category record.
type Category struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	Name    string
	OwnerID string
}

// ICategoryTable defines the interface for category storage operations.
// Every method is scoped to one owner; rows of other owners behave as absent.
//
//go:generate mockery --name ICategoryTable --output mock_ICategoryTable.go
type ICategoryTable interface {
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*Category, error)
	List(ctx context.Context, ownerID string) ([]*Category, error)
	Count(ctx context.Context, ownerID string) (int64, error)
	Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error)
	Rename(ctx context.Context, ownerID string, id uuid.UUID, name string) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}
