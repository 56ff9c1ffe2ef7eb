// Package stats runs the three statistics through both query paths and
// times each materialization. Plan and query construction happen outside
// the timer; only Collect is measured, so the paths stay comparable.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dtnitsch/wordbench/models"
	"github.com/dtnitsch/wordbench/pkg/engine"
)

// Task labels used in the timing table.
const (
	TaskWordCount     = "word_count"
	TaskWordFrequency = "word_frequency"
	TaskWordPairs     = "word_pairs"
)

// Outcome holds every materialized result plus the timing records, in
// execution order (api before sql for each statistic).
type Outcome struct {
	APITotal int64
	SQLTotal int64

	APIWords []models.KeyCount
	SQLWords []models.KeyCount

	APIPairs []models.KeyCount
	SQLPairs []models.KeyCount

	Timings []models.TimingRecord
}

// Runner executes the statistics over a pair of engines.
type Runner struct {
	API    engine.Engine
	SQL    engine.Engine
	TopN   int
	Logger *slog.Logger
}

// Run computes all three statistics on both paths, synchronously and in
// order. Any engine failure aborts the run; mismatches are not detected
// here, that is the checker's job.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	out := &Outcome{}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Statistic 1: total token count.
	total, elapsed, err := collectCount(ctx, r.API.TotalCount())
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", engine.MethodAPI, TaskWordCount, err)
	}
	out.APITotal = total
	out.record(TaskWordCount, engine.MethodAPI, elapsed)
	logger.Info("computed total word count", "method", engine.MethodAPI, "total", total, "seconds", elapsed)

	total, elapsed, err = collectCount(ctx, r.SQL.TotalCount())
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", engine.MethodSQL, TaskWordCount, err)
	}
	out.SQLTotal = total
	out.record(TaskWordCount, engine.MethodSQL, elapsed)
	logger.Info("computed total word count", "method", engine.MethodSQL, "total", total, "seconds", elapsed)

	// Statistic 2: top-N word frequency.
	out.APIWords, elapsed, err = collectTable(ctx, r.API.TopWords(r.TopN))
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", engine.MethodAPI, TaskWordFrequency, err)
	}
	out.record(TaskWordFrequency, engine.MethodAPI, elapsed)
	logger.Info("computed word frequency", "method", engine.MethodAPI, "rows", len(out.APIWords), "seconds", elapsed)

	out.SQLWords, elapsed, err = collectTable(ctx, r.SQL.TopWords(r.TopN))
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", engine.MethodSQL, TaskWordFrequency, err)
	}
	out.record(TaskWordFrequency, engine.MethodSQL, elapsed)
	logger.Info("computed word frequency", "method", engine.MethodSQL, "rows", len(out.SQLWords), "seconds", elapsed)

	// Statistic 3: top-N unordered pair frequency.
	out.APIPairs, elapsed, err = collectTable(ctx, r.API.TopPairs(r.TopN))
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", engine.MethodAPI, TaskWordPairs, err)
	}
	out.record(TaskWordPairs, engine.MethodAPI, elapsed)
	logger.Info("computed word pairs", "method", engine.MethodAPI, "rows", len(out.APIPairs), "seconds", elapsed)

	out.SQLPairs, elapsed, err = collectTable(ctx, r.SQL.TopPairs(r.TopN))
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", engine.MethodSQL, TaskWordPairs, err)
	}
	out.record(TaskWordPairs, engine.MethodSQL, elapsed)
	logger.Info("computed word pairs", "method", engine.MethodSQL, "rows", len(out.SQLPairs), "seconds", elapsed)

	return out, nil
}

func (o *Outcome) record(task, method string, seconds float64) {
	o.Timings = append(o.Timings, models.TimingRecord{Task: task, Method: method, Seconds: seconds})
}

func collectCount(ctx context.Context, q engine.CountQuery) (int64, float64, error) {
	start := time.Now()
	total, err := q.Collect(ctx)
	return total, roundSeconds(time.Since(start)), err
}

func collectTable(ctx context.Context, q engine.TableQuery) ([]models.KeyCount, float64, error) {
	start := time.Now()
	rows, err := q.Collect(ctx)
	return rows, roundSeconds(time.Since(start)), err
}

// roundSeconds rounds to four decimal places, the precision carried through
// to the timing table.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*10000) / 10000
}
