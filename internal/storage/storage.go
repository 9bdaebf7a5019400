package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/expense-tracker/internal/config"
)

// BeginFunc opens a store transaction and returns the tables bound to it.
type BeginFunc func(ctx context.Context) (*Writer, error)

// Storage is the persistence store. Reads go through the embedded Reader,
// writes through a Writer obtained from Write.
type Storage struct {
	Reader
	DB    *sql.DB
	begin BeginFunc
}

// New builds a Storage from reader tables and a transaction opener.
func New(reader Reader, begin BeginFunc) *Storage {
	return &Storage{Reader: reader, begin: begin}
}

// NewStorage opens the Postgres database described by env.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", ConnectionString(env))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgresStorage(db), nil
}

// NewPostgresStorage wraps an open Postgres handle.
func NewPostgresStorage(db *sql.DB) *Storage {
	exec := bob.NewDB(db)
	return &Storage{
		Reader: NewReader(exec),
		DB:     db,
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := exec.BeginTx(ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("begin transaction: %w", err)
			}
			return newTxWriter(tx), nil
		},
	}
}

// ConnectionString returns the lib/pq URL for the configured database.
func ConnectionString(env *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(env.PostgresUsername, env.PostgresPassword),
		Host:     env.PostgresAddress + ":" + env.PostgresPort,
		Path:     "/" + env.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Write opens a store transaction. A Storage without a transaction opener
// hands out its own reader tables with no-op commit and rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if s.begin == nil {
		return NewWriter(s.Reader, nil, nil), nil
	}
	return s.begin(ctx)
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
