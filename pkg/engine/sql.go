package engine

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/dtnitsch/wordbench/models"
	"github.com/dtnitsch/wordbench/pkg/pairs"
	"github.com/dtnitsch/wordbench/pkg/tokenizer"
)

// schema holds one row per flat token and one row per line-pair. The pairs
// table is populated through pairs.ForLine at load time, so the SQL path
// shares the exact pairing logic with the fluent path.
const schema = `
PRAGMA temp_store = MEMORY;

CREATE TABLE words (
    word TEXT NOT NULL
);

CREATE TABLE pairs (
    pair TEXT NOT NULL
);
`

// The three statistics as declarative query strings. Ties break on the key
// ascending, matching the fluent path's comparator.
const (
	totalWordsQuery = `SELECT COUNT(*) AS total_words FROM words`

	topWordsQuery = `
SELECT word, COUNT(*) AS frequency
FROM words
GROUP BY word
ORDER BY frequency DESC, word ASC
LIMIT ?`

	topPairsQuery = `
SELECT pair, COUNT(*) AS pair_count
FROM pairs
GROUP BY pair
ORDER BY pair_count DESC, pair ASC
LIMIT ?`
)

// SQL is the declarative backend: an in-memory SQLite database loaded once
// from the corpus views, queried with SQL strings.
type SQL struct {
	db *sql.DB
}

// NewSQL opens an in-memory database and loads both corpus views.
func NewSQL(ctx context.Context, corpus *tokenizer.Corpus) (*SQL, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A :memory: database lives on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := load(ctx, db, corpus); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	return &SQL{db: db}, nil
}

func load(ctx context.Context, db *sql.DB, corpus *tokenizer.Corpus) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insertWord, err := tx.PrepareContext(ctx, `INSERT INTO words (word) VALUES (?)`)
	if err != nil {
		return err
	}
	defer insertWord.Close()
	for _, tok := range corpus.Flat {
		if tok == "" {
			continue
		}
		if _, err := insertWord.ExecContext(ctx, tok); err != nil {
			return err
		}
	}

	insertPair, err := tx.PrepareContext(ctx, `INSERT INTO pairs (pair) VALUES (?)`)
	if err != nil {
		return err
	}
	defer insertPair.Close()
	for _, line := range corpus.Lines {
		for _, key := range pairs.ForLine(line) {
			if _, err := insertPair.ExecContext(ctx, key); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *SQL) Name() string { return MethodSQL }

func (s *SQL) Close() error { return s.db.Close() }

func (s *SQL) TotalCount() CountQuery {
	return sqlCount{db: s.db, query: totalWordsQuery}
}

func (s *SQL) TopWords(n int) TableQuery {
	return sqlTop{db: s.db, query: topWordsQuery, n: n}
}

func (s *SQL) TopPairs(n int) TableQuery {
	return sqlTop{db: s.db, query: topPairsQuery, n: n}
}

type sqlCount struct {
	db    *sql.DB
	query string
}

func (q sqlCount) Collect(ctx context.Context) (int64, error) {
	var total int64
	if err := q.db.QueryRowContext(ctx, q.query).Scan(&total); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return total, nil
}

type sqlTop struct {
	db    *sql.DB
	query string
	n     int
}

func (q sqlTop) Collect(ctx context.Context) ([]models.KeyCount, error) {
	rows, err := q.db.QueryContext(ctx, q.query, q.n)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	var out []models.KeyCount
	for rows.Next() {
		var kc models.KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		out = append(out, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}
