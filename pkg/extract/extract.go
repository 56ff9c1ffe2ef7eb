// Package extract converts a structured document into the plain-text corpus
// the tokenizer consumes. Supported inputs: .docx, .html/.htm and .txt.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/wordbench/pkg/export"
)

// Paragraphs reads the document at path and returns its non-empty paragraphs
// in document order. Paragraphs whose trimmed content is empty are dropped
// entirely. The format is chosen by file extension.
func Paragraphs(path string) ([]string, error) {
	var raw []string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		raw, err = docxParagraphs(path)
	case ".html", ".htm":
		raw, err = htmlParagraphs(path)
	case ".txt", "":
		raw, err = textParagraphs(path)
	default:
		return nil, fmt.Errorf("unsupported document format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(raw))
	for _, p := range raw {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

// WriteCorpus joins paragraphs with newlines and writes them to outPath as
// UTF-8. The corpus file is the durable handoff between extraction and
// tokenization and can be inspected directly.
func WriteCorpus(paragraphs []string, outPath string) error {
	content := strings.Join(paragraphs, "\n")
	if err := export.WriteFile(outPath, []byte(content)); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	return nil
}

// textParagraphs treats each line of a plain-text file as one paragraph.
func textParagraphs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return strings.Split(string(data), "\n"), nil
}
