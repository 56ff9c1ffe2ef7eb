package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestNew_CreatesDirectory(t *testing.T) {
	base := t.TempDir()
	s, err := New(base, "doc.docx")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	info, err := os.Stat(s.Dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("session dir missing: %v", err)
	}
	if !strings.HasPrefix(s.Dir, filepath.Join(base, "sessions")) {
		t.Errorf("session dir %s not under sessions/", s.Dir)
	}
	if s.ID == "" {
		t.Error("empty session ID")
	}
}

func TestShortHash_StablePerInput(t *testing.T) {
	if shortHash("a.docx") != shortHash("a.docx") {
		t.Error("hash not stable for same input")
	}
	if shortHash("a.docx") == shortHash("b.docx") {
		t.Error("different inputs share a hash")
	}
	if len(shortHash("a.docx")) != 12 {
		t.Errorf("hash length = %d, want 12", len(shortHash("a.docx")))
	}
}

func TestWriteSummary(t *testing.T) {
	s, err := New(t.TempDir(), "doc.txt")
	if err != nil {
		t.Fatal(err)
	}

	sum := &Summary{
		SessionID: s.ID,
		Created:   time.Now(),
		Input:     "doc.txt",
		Tokens:    5,
		Matches:   MatchSummary{WordCount: true, WordFrequency: true, WordPairs: true},
		Timings:   []Timing{{Task: "word_count", Method: "api", Seconds: 0.001}},
	}
	if err := s.WriteSummary(sum); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, summaryFile))
	if err != nil {
		t.Fatal(err)
	}
	var got Summary
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("summary not valid yaml: %v", err)
	}
	if got.SessionID != s.ID || got.Tokens != 5 || !got.Matches.WordPairs {
		t.Errorf("round-tripped summary = %+v", got)
	}
}

func TestUpdateIndex_NewestFirst(t *testing.T) {
	base := t.TempDir()
	s, err := New(base, "doc.txt")
	if err != nil {
		t.Fatal(err)
	}

	older := IndexEntry{SessionID: "2020-01-01T00-00-00-aaaaaaaaaaaa", Input: "old.txt"}
	newer := IndexEntry{SessionID: s.ID, Input: "doc.txt", AllMatched: true}

	if err := s.UpdateIndex(older); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateIndex(newer); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(base, indexFile))
	if err != nil {
		t.Fatal(err)
	}
	var index Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		t.Fatal(err)
	}

	if len(index.Sessions) != 2 {
		t.Fatalf("got %d index entries, want 2", len(index.Sessions))
	}
	if index.Sessions[0].SessionID != s.ID {
		t.Errorf("first entry = %s, want newest %s", index.Sessions[0].SessionID, s.ID)
	}
}

func TestUpdateIndex_ReplacesExistingEntry(t *testing.T) {
	base := t.TempDir()
	s, err := New(base, "doc.txt")
	if err != nil {
		t.Fatal(err)
	}

	entry := IndexEntry{SessionID: s.ID, Input: "doc.txt", AllMatched: false}
	if err := s.UpdateIndex(entry); err != nil {
		t.Fatal(err)
	}
	entry.AllMatched = true
	if err := s.UpdateIndex(entry); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(filepath.Join(base, indexFile))
	var index Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		t.Fatal(err)
	}
	if len(index.Sessions) != 1 {
		t.Fatalf("got %d entries, want 1 after replace", len(index.Sessions))
	}
	if !index.Sessions[0].AllMatched {
		t.Error("entry not replaced")
	}
}
