// Package tokenizer turns a plain-text corpus into the two token views the
// statistics run on: one row of tokens per source line, and a flat stream of
// every token in the file.
package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Scanner buffer large enough for very long lines (single-paragraph corpora).
const maxLineBytes = 4 * 1024 * 1024

// Corpus holds the token views derived from one text file. Both views are
// built once and never mutated afterwards.
type Corpus struct {
	// Lines has one entry per source line, holding that line's tokens in
	// order. A line with no tokens contributes an empty entry.
	Lines [][]string

	// Flat has one entry per token across all lines.
	Flat []string
}

// NormalizeLine applies the normalization pipeline to one line:
// lowercase, delete everything outside [a-z] and whitespace, trim, then
// split on runs of whitespace. Empty tokens never appear in the result.
func NormalizeLine(line string) []string {
	lowered := strings.ToLower(line)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	// Fields trims and splits on whitespace runs, discarding empties.
	return strings.Fields(b.String())
}

// FromLines builds a Corpus from raw text lines.
func FromLines(lines []string) *Corpus {
	c := &Corpus{Lines: make([][]string, 0, len(lines))}
	for _, line := range lines {
		tokens := NormalizeLine(line)
		c.Lines = append(c.Lines, tokens)
		c.Flat = append(c.Flat, tokens...)
	}
	return c
}

// LoadCorpus reads a UTF-8 text file line by line and tokenizes it.
func LoadCorpus(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	c := &Corpus{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		tokens := NormalizeLine(sc.Text())
		c.Lines = append(c.Lines, tokens)
		c.Flat = append(c.Flat, tokens...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	return c, nil
}
