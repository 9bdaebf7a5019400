package storage

import (
	"context"

	"github.com/stephenafamo/bob"
)

// Writer exposes the tables bound to one open store transaction.
type Writer struct {
	Reader
	commit   func(ctx context.Context) error
	rollback func(ctx context.Context) error
}

// NewWriter builds a Writer from tables and the functions ending their
// transaction. Nil functions are treated as no-ops.
func NewWriter(reader Reader, commit, rollback func(ctx context.Context) error) *Writer {
	return &Writer{
		Reader:   reader,
		commit:   commit,
		rollback: rollback,
	}
}

func newTxWriter(tx bob.Tx) *Writer {
	return NewWriter(NewReader(tx), tx.Commit, tx.Rollback)
}

func (w *Writer) Commit() error {
	if w.commit == nil {
		return nil
	}
	return w.commit(context.Background())
}

func (w *Writer) Rollback() error {
	if w.rollback == nil {
		return nil
	}
	return w.rollback(context.Background())
}
