package engine

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dtnitsch/wordbench/models"
	"github.com/dtnitsch/wordbench/pkg/pairs"
	"github.com/dtnitsch/wordbench/pkg/tokenizer"
)

// Below this many rows the sharded count costs more than it saves.
const minParallelRows = 4096

// Fluent is the transformation-chain backend. Queries are descriptions of
// work; rows only flow when Collect runs. Grouping fans out across
// goroutines internally, invisible to callers.
type Fluent struct {
	corpus  *tokenizer.Corpus
	workers int
}

// NewFluent wraps a corpus in the fluent backend.
func NewFluent(corpus *tokenizer.Corpus) *Fluent {
	return &Fluent{
		corpus:  corpus,
		workers: runtime.GOMAXPROCS(0),
	}
}

func (f *Fluent) Name() string { return MethodAPI }

// Close is a no-op; the backend holds no resources beyond the shared corpus.
func (f *Fluent) Close() error { return nil }

func (f *Fluent) TotalCount() CountQuery {
	return fluentCount{ds: f.flatTokens()}
}

func (f *Fluent) TopWords(n int) TableQuery {
	return fluentTop{ds: f.flatTokens(), n: n, workers: f.workers}
}

func (f *Fluent) TopPairs(n int) TableQuery {
	return fluentTop{ds: f.linePairs(), n: n, workers: f.workers}
}

// flatTokens describes the flat-token view: every token, empties filtered.
func (f *Fluent) flatTokens() *dataset {
	ds := &dataset{source: func(ctx context.Context) ([]string, error) {
		return f.corpus.Flat, nil
	}}
	return ds.filter(func(row string) bool { return row != "" })
}

// linePairs describes the pair view: each line's canonical pair keys,
// exploded into one row per pair per line.
func (f *Fluent) linePairs() *dataset {
	return &dataset{source: func(ctx context.Context) ([]string, error) {
		var rows []string
		for _, line := range f.corpus.Lines {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rows = append(rows, pairs.ForLine(line)...)
		}
		return rows, nil
	}}
}

// dataset is a lazily evaluated chain of row transformations.
type dataset struct {
	source func(ctx context.Context) ([]string, error)
	steps  []func(ctx context.Context, rows []string) ([]string, error)
}

func (d *dataset) filter(keep func(string) bool) *dataset {
	d.steps = append(d.steps, func(ctx context.Context, rows []string) ([]string, error) {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			if keep(r) {
				out = append(out, r)
			}
		}
		return out, nil
	})
	return d
}

func (d *dataset) collectRows(ctx context.Context) ([]string, error) {
	rows, err := d.source(ctx)
	if err != nil {
		return nil, err
	}
	for _, step := range d.steps {
		rows, err = step(ctx, rows)
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

type fluentCount struct {
	ds *dataset
}

func (q fluentCount) Collect(ctx context.Context) (int64, error) {
	rows, err := q.ds.collectRows(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

type fluentTop struct {
	ds      *dataset
	n       int
	workers int
}

func (q fluentTop) Collect(ctx context.Context) ([]models.KeyCount, error) {
	rows, err := q.ds.collectRows(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := groupCount(ctx, rows, q.workers)
	if err != nil {
		return nil, err
	}

	list := make([]models.KeyCount, 0, len(counts))
	for k, c := range counts {
		list = append(list, models.KeyCount{Key: k, Count: c})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Key < list[j].Key
	})

	if q.n >= 0 && len(list) > q.n {
		list = list[:q.n]
	}
	return list, nil
}

// groupCount counts occurrences, sharding the rows across workers and
// merging the partial maps.
func groupCount(ctx context.Context, rows []string, workers int) (map[string]int64, error) {
	if workers < 1 {
		workers = 1
	}
	if len(rows) < minParallelRows || workers == 1 {
		counts := make(map[string]int64, len(rows)/4+1)
		for _, r := range rows {
			counts[r]++
		}
		return counts, ctx.Err()
	}

	partials := make([]map[string]int64, workers)
	chunk := (len(rows) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		i := i
		lo := i * chunk
		if lo >= len(rows) {
			break
		}
		hi := lo + chunk
		if hi > len(rows) {
			hi = len(rows)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m := make(map[string]int64, (hi-lo)/4+1)
			for _, r := range rows[lo:hi] {
				m[r]++
			}
			partials[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]int64)
	for _, m := range partials {
		for k, c := range m {
			merged[k] += c
		}
	}
	return merged, nil
}
