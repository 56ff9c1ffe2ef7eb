package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/wordbench/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return records
}

func TestWriteCountTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sql_word_count.csv")
	if err := WriteCountTable(path, "sql", 12345); err != nil {
		t.Fatalf("WriteCountTable() error = %v", err)
	}

	got := readCSV(t, path)
	want := [][]string{{"source", "total_words"}, {"sql", "12345"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("table = %v, want %v", got, want)
	}
}

func TestWriteKeyCountTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_word_frequency.csv")
	rows := []models.KeyCount{{Key: "cat", Count: 2}, {Key: "dog", Count: 1}}
	if err := WriteKeyCountTable(path, "token", "frequency", rows); err != nil {
		t.Fatalf("WriteKeyCountTable() error = %v", err)
	}

	got := readCSV(t, path)
	want := [][]string{{"token", "frequency"}, {"cat", "2"}, {"dog", "1"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("table = %v, want %v", got, want)
	}
}

func TestWriteTimings_FixedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime_comparison.csv")
	recs := []models.TimingRecord{
		{Task: "word_count", Method: "api", Seconds: 0.0012},
		{Task: "word_count", Method: "sql", Seconds: 0.0034},
	}
	if err := WriteTimings(path, recs); err != nil {
		t.Fatalf("WriteTimings() error = %v", err)
	}

	got := readCSV(t, path)
	if !reflect.DeepEqual(got[0], []string{"task", "method", "runtime_seconds"}) {
		t.Errorf("header = %v", got[0])
	}
	if got[1][2] != "0.0012" {
		t.Errorf("seconds formatted as %q, want 0.0012", got[1][2])
	}
}

func TestWriteFile_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	if err := WriteFile(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("second")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want overwrite with %q", data, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	if err := WriteFile(path, []byte("x")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output missing: %v", err)
	}
}
