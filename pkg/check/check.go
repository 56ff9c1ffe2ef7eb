// Package check compares the two paths' materialized results. A mismatch is
// a diagnostic, not an abort: the pipeline keeps going either way.
package check

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/wordbench/models"
)

// Result is the verdict for one statistic.
type Result struct {
	Stat  string
	Match bool

	// Diagnostic is a human-readable explanation; on mismatch it contains
	// both result sets in full.
	Diagnostic string
}

// Counts compares the scalar totals of both paths.
func Counts(stat string, api, sql int64) Result {
	if api == sql {
		return Result{
			Stat:       stat,
			Match:      true,
			Diagnostic: fmt.Sprintf("%s: results match (total %d)", stat, api),
		}
	}
	return Result{
		Stat:       stat,
		Match:      false,
		Diagnostic: fmt.Sprintf("%s: MISMATCH: api=%d sql=%d", stat, api, sql),
	}
}

// Tables compares two frequency tables elementwise. Both paths order rows by
// count descending then key ascending, so exact positional equality is the
// correct notion of agreement.
func Tables(stat string, api, sql []models.KeyCount) Result {
	if equalTables(api, sql) {
		return Result{
			Stat:       stat,
			Match:      true,
			Diagnostic: fmt.Sprintf("%s: results match (%d rows)", stat, len(api)),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: MISMATCH\n", stat)
	fmt.Fprintf(&b, "api (%d rows):\n%s", len(api), formatTable(api))
	fmt.Fprintf(&b, "sql (%d rows):\n%s", len(sql), formatTable(sql))
	return Result{Stat: stat, Match: false, Diagnostic: b.String()}
}

func equalTables(a, b []models.KeyCount) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatTable(rows []models.KeyCount) string {
	if len(rows) == 0 {
		return "  (empty)\n"
	}
	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "  %2d. %s: %d\n", i+1, r.Key, r.Count)
	}
	return b.String()
}
