// Package engine provides two interchangeable query backends over a
// tokenized corpus: a fluent in-memory transformation chain and declarative
// SQL over SQLite. Both expose lazily built queries so callers can time the
// materializing step on its own.
package engine

import (
	"context"

	"github.com/dtnitsch/wordbench/models"
)

// Method labels used in output tables and console diagnostics.
const (
	MethodAPI = "api"
	MethodSQL = "sql"
)

// CountQuery is a deferred scalar count. Nothing is computed until Collect.
type CountQuery interface {
	Collect(ctx context.Context) (int64, error)
}

// TableQuery is a deferred frequency table. Collect materializes the rows,
// ordered by count descending and key ascending.
type TableQuery interface {
	Collect(ctx context.Context) ([]models.KeyCount, error)
}

// Engine builds the three statistics queries over one corpus. Engines are
// read-only once constructed; Close releases backend resources.
type Engine interface {
	Name() string
	TotalCount() CountQuery
	TopWords(n int) TableQuery
	TopPairs(n int) TableQuery
	Close() error
}
