// Package session tracks benchmark runs. Each run gets its own directory
// under <output-dir>/sessions/ holding the corpus, the CSV tables and a yaml
// summary; <output-dir>/index.yaml lists all sessions, newest first.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wordbench/models"
	"github.com/dtnitsch/wordbench/pkg/export"
)

const (
	summaryFile = "summary.yaml"
	indexFile   = "index.yaml"
)

// Session is one benchmark run's bookkeeping handle.
type Session struct {
	ID      string
	Dir     string
	Created time.Time

	baseDir string
}

// MatchSummary records the checker verdict per statistic.
type MatchSummary struct {
	WordCount     bool `yaml:"word_count"`
	WordFrequency bool `yaml:"word_frequency"`
	WordPairs     bool `yaml:"word_pairs"`
}

// Timing mirrors one timing-table row for the yaml summary.
type Timing struct {
	Task    string  `yaml:"task"`
	Method  string  `yaml:"method"`
	Seconds float64 `yaml:"runtime_seconds"`
}

// Summary is the per-session summary.yaml payload.
type Summary struct {
	SessionID  string    `yaml:"session_id"`
	Created    time.Time `yaml:"created"`
	Input      string    `yaml:"input"`
	CorpusPath string    `yaml:"corpus_path"`
	Paragraphs int       `yaml:"paragraphs"`
	Lines      int       `yaml:"lines"`
	Tokens     int64     `yaml:"tokens"`
	Language   string    `yaml:"language,omitempty"`

	Matches MatchSummary `yaml:"matches"`
	Timings []Timing     `yaml:"timings"`
}

// IndexEntry is one row of the sessions index.
type IndexEntry struct {
	SessionID  string    `yaml:"session_id"`
	Created    time.Time `yaml:"created"`
	Input      string    `yaml:"input"`
	AllMatched bool      `yaml:"all_matched"`
}

// Index is the index.yaml file at the output root.
type Index struct {
	Sessions []IndexEntry `yaml:"sessions"`
}

// New creates the session directory for a run over the given input document.
// The ID is timestamp-first so lexical order is chronological.
func New(baseDir, inputPath string) (*Session, error) {
	created := time.Now()
	id := fmt.Sprintf("%s-%s", created.Format("2006-01-02T15-04-05"), shortHash(inputPath))
	dir := filepath.Join(baseDir, "sessions", id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &Session{
		ID:      id,
		Dir:     dir,
		Created: created,
		baseDir: baseDir,
	}, nil
}

// shortHash derives a stable 12-hex identifier from the input path.
func shortHash(inputPath string) string {
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		abs = inputPath
	}
	h := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(h[:6])
}

// WriteSummary writes summary.yaml into the session directory.
func (s *Session) WriteSummary(sum *Summary) error {
	data, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := export.WriteFile(filepath.Join(s.Dir, summaryFile), data); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// UpdateIndex adds or replaces this session's entry in index.yaml.
func (s *Session) UpdateIndex(entry IndexEntry) error {
	indexPath := filepath.Join(s.baseDir, indexFile)

	var index Index
	data, err := os.ReadFile(indexPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read session index: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("failed to parse session index: %w", err)
		}
	}

	found := false
	for i, e := range index.Sessions {
		if e.SessionID == entry.SessionID {
			index.Sessions[i] = entry
			found = true
			break
		}
	}
	if !found {
		index.Sessions = append(index.Sessions, entry)
	}

	// Newest first; IDs are timestamp-first so string order works.
	sort.Slice(index.Sessions, func(i, j int) bool {
		return index.Sessions[i].SessionID > index.Sessions[j].SessionID
	})

	out, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("failed to marshal session index: %w", err)
	}
	if err := export.WriteFile(indexPath, out); err != nil {
		return fmt.Errorf("failed to write session index: %w", err)
	}
	return nil
}

// TimingsFromRecords converts timing records for the yaml summary.
func TimingsFromRecords(records []models.TimingRecord) []Timing {
	out := make([]Timing, 0, len(records))
	for _, r := range records {
		out = append(out, Timing{Task: r.Task, Method: r.Method, Seconds: r.Seconds})
	}
	return out
}
