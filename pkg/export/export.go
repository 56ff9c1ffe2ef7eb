// Package export writes the result tables as CSV with a header row. All
// writes go through an atomic tmp-and-rename so a rerun overwrites cleanly
// and a crash never leaves a partial file behind.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dtnitsch/wordbench/models"
)

// Output file names within a session directory.
const (
	APIWordCountFile     = "api_word_count.csv"
	SQLWordCountFile     = "sql_word_count.csv"
	APIWordFrequencyFile = "api_word_frequency.csv"
	SQLWordFrequencyFile = "sql_word_frequency.csv"
	APIWordPairsFile     = "api_word_pairs.csv"
	SQLWordPairsFile     = "sql_word_pairs.csv"
	RuntimeFile          = "runtime_comparison.csv"
)

// WriteFile writes data to path atomically: the bytes land in a temp file in
// the target directory which is then renamed over path.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// WriteCSV writes a single CSV table with a header row.
func WriteCSV(path string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to encode row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode csv: %w", err)
	}

	return WriteFile(path, buf.Bytes())
}

// WriteCountTable writes the single-row total-count table for one path.
func WriteCountTable(path, source string, total int64) error {
	return WriteCSV(path,
		[]string{"source", "total_words"},
		[][]string{{source, strconv.FormatInt(total, 10)}},
	)
}

// WriteKeyCountTable writes a frequency table under the given column names.
func WriteKeyCountTable(path, keyColumn, countColumn string, rows []models.KeyCount) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Key, strconv.FormatInt(r.Count, 10)})
	}
	return WriteCSV(path, []string{keyColumn, countColumn}, out)
}

// WriteTimings writes the consolidated timing table, one row per statistic
// per path, in the order the records were collected.
func WriteTimings(path string, records []models.TimingRecord) error {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, []string{
			r.Task,
			r.Method,
			strconv.FormatFloat(r.Seconds, 'f', 4, 64),
		})
	}
	return WriteCSV(path, []string{"task", "method", "runtime_seconds"}, out)
}
