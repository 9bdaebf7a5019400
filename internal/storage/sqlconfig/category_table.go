package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const categoriesTableName = "categories"

// CategoriesTable provides access to the categories table.
type CategoriesTable struct {
	exec bob.Executor
}

// Ensure CategoriesTable implements ICategoryTable at compile time.
var _ ICategoryTable = (*CategoriesTable)(nil)

// NewCategoriesTable creates a CategoriesTable running on exec, which may be
// the database handle or an open transaction.
func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

// FindByID retrieves a category by primary key within one owner's rows.
func (t *CategoriesTable) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*Category, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	q := psql.Select(
		sm.Columns("id", "name", "owner_id", "created_at"),
		sm.From(categoriesTableName),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Category]())
	if err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

// List returns the owner's categories ordered by name.
func (t *CategoriesTable) List(ctx context.Context, ownerID string) ([]*Category, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	q := psql.Select(
		sm.Columns("id", "name", "owner_id", "created_at"),
		sm.From(categoriesTableName),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[Category]())
	if err != nil {
		return nil, translateError(err)
	}
	result := make([]*Category, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// Count returns how many categories the owner has.
func (t *CategoriesTable) Count(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, ErrMissingOwner
	}
	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From(categoriesTableName),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	count, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Insert creates a new category and returns its generated ID.
// A second category with the same owner and name fails with ErrDuplicate.
func (t *CategoriesTable) Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error) {
	if create.OwnerID == "" {
		return uuid.Nil, ErrMissingOwner
	}
	q := psql.Insert(
		im.Into(categoriesTableName, "name", "owner_id"),
		im.Values(psql.Arg(create.Name, create.OwnerID)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, translateError(err)
	}
	return id, nil
}

// Rename changes the name of an owned category.
func (t *CategoriesTable) Rename(ctx context.Context, ownerID string, id uuid.UUID, name string) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	q := psql.Update(
		um.Table(categoriesTableName),
		um.SetCol("name").ToArg(name),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// Delete removes an owned category. The transactions foreign key restricts
// deletes of referenced categories, which surface as ErrForeignKey.
func (t *CategoriesTable) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	q := psql.Delete(
		dm.From(categoriesTableName),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}
