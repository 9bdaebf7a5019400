package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const transactionsTableName = "transactions"

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// selectJoined builds a select over the owner's transactions joined with
// their category.
func selectJoined(ownerID string, mods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"t.id", "t.amount", "t.transaction_date", "t.notes", "t.type",
			"t.category_id", "c.name AS category_name", "t.owner_id", "t.created_at",
		),
		sm.From(transactionsTableName).As("t"),
		sm.InnerJoin(categoriesTableName).As("c").On(psql.And(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
			psql.Quote("c", "owner_id").EQ(psql.Quote("t", "owner_id")),
		)),
		sm.Where(psql.Quote("t", "owner_id").EQ(psql.Arg(ownerID))),
	}
	return psql.Select(append(queryMods, mods...)...)
}

// FindByID retrieves a transaction by primary key within one owner's rows.
func (t *TransactionsTable) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*Transaction, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	q := selectJoined(ownerID, sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))))
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	if create.OwnerID == "" {
		return uuid.Nil, ErrMissingOwner
	}
	columns := []string{"owner_id", "category_id", "amount", "notes", "type"}
	values := []any{create.OwnerID, create.CategoryID, create.Amount, create.Notes, int16(create.Type)}
	if !create.TransactionDate.IsZero() {
		columns = append(columns, "transaction_date")
		values = append(values, create.TransactionDate)
	}
	q := psql.Insert(
		im.Into(transactionsTableName, columns...),
		im.Values(psql.Arg(values...)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, translateError(err)
	}
	return id, nil
}

// Update applies the set fields of update to an owned transaction.
func (t *TransactionsTable) Update(ctx context.Context, ownerID string, id uuid.UUID, update *TransactionUpdate) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	if update == nil || update.IsEmpty() {
		_, err := t.FindByID(ctx, ownerID, id)
		return err
	}

	queryMods := []bob.Mod[*dialect.UpdateQuery]{um.Table(transactionsTableName)}
	if amount, ok := update.Amount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(amount))
	}
	if date, ok := update.TransactionDate.Get(); ok {
		queryMods = append(queryMods, um.SetCol("transaction_date").ToArg(date))
	}
	if notes, ok := update.Notes.Get(); ok {
		queryMods = append(queryMods, um.SetCol("notes").ToArg(notes))
	}
	if txType, ok := update.Type.Get(); ok {
		queryMods = append(queryMods, um.SetCol("type").ToArg(int16(txType)))
	}
	if categoryID, ok := update.CategoryID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("category_id").ToArg(categoryID))
	}
	queryMods = append(queryMods,
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	res, err := bob.Exec(ctx, t.exec, psql.Update(queryMods...))
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// Delete removes an owned transaction.
func (t *TransactionsTable) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return ErrMissingOwner
	}
	q := psql.Delete(
		dm.From(transactionsTableName),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// List returns the owner's transactions matching the filter, newest date first.
// When a limit is set one extra row is fetched so callers can detect a next page.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	if filter == nil || filter.OwnerID == "" {
		return nil, ErrMissingOwner
	}
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter.CategoryID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "category_id").EQ(psql.Arg(*filter.CategoryID))))
	}
	if filter.MaxCreationTime != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("t", "transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
	)

	rows, err := bob.All(ctx, t.exec, selectJoined(filter.OwnerID, queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, translateError(err)
	}
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// CountByCategory returns how many of the owner's transactions reference the category.
func (t *TransactionsTable) CountByCategory(ctx context.Context, ownerID string, categoryID uuid.UUID) (int64, error) {
	if ownerID == "" {
		return 0, ErrMissingOwner
	}
	q := psql.Select(
		sm.Columns("count(*)"),
		sm.From(transactionsTableName),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
	)
	count, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// MaxCreatedAt returns the newest created_at among the owner's transactions,
// or nil when the owner has none.
func (t *TransactionsTable) MaxCreatedAt(ctx context.Context, ownerID string) (*time.Time, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	q := psql.Select(
		sm.Columns("max(created_at)"),
		sm.From(transactionsTableName),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	latest, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[*time.Time])
	if err != nil {
		return nil, translateError(err)
	}
	return latest, nil
}
