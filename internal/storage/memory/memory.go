// Package memory is an in-process Storage backend. It mirrors the Postgres
// schema constraints: (owner, name) uniqueness for categories and the
// restrict-on-delete composite reference from transactions to categories.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

type state struct {
	categories   map[uuid.UUID]sqlconfig.Category
	transactions map[uuid.UUID]sqlconfig.Transaction
}

func (s state) clone() state {
	return state{
		categories:   maps.Clone(s.categories),
		transactions: maps.Clone(s.transactions),
	}
}

// Store holds every row behind one lock. A writer holds the lock from
// Write until Commit or Rollback, so writers are serialised and readers
// never observe a half-applied action.
type Store struct {
	mu          sync.RWMutex
	data        state
	now         func() time.Time
	lastCreated time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for created_at values and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: state{
			categories:   make(map[uuid.UUID]sqlconfig.Category),
			transactions: make(map[uuid.UUID]sqlconfig.Transaction),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New returns a storage.Storage backed by a fresh Store.
func New(opts ...Option) *storage.Storage {
	return NewStore(opts...).Storage()
}

// Storage exposes the Store through the storage package types.
func (s *Store) Storage() *storage.Storage {
	return storage.New(s.reader(true), s.begin)
}

func (s *Store) reader(locking bool) storage.Reader {
	return storage.Reader{
		Categories:   &categoryTable{store: s, locking: locking},
		Transactions: &transactionTable{store: s, locking: locking},
	}
}

func (s *Store) begin(ctx context.Context) (*storage.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	snapshot := s.data.clone()

	var once sync.Once
	release := func(restore bool) {
		once.Do(func() {
			if restore {
				s.data = snapshot
			}
			s.mu.Unlock()
		})
	}

	commit := func(context.Context) error {
		release(false)
		return nil
	}
	rollback := func(context.Context) error {
		release(true)
		return nil
	}
	return storage.NewWriter(s.reader(false), commit, rollback), nil
}

// createdAt hands out strictly increasing creation timestamps so the
// created_at ordering is total, as it is in practice on Postgres.
func (s *Store) createdAt() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastCreated) {
		t = s.lastCreated.Add(time.Microsecond)
	}
	s.lastCreated = t
	return t
}

func (s *Store) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func newID() (uuid.UUID, error) {
	return uuid.NewV4()
}

// lock takes the store lock unless the caller runs inside a writer, which
// already holds it.
func lock(s *Store, locking, write bool) func() {
	if !locking {
		return func() {}
	}
	if write {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.mu.RLock()
	return s.mu.RUnlock
}
