// Package extractcmd implements the `extract` command: document to
// plain-text corpus, nothing else.
package extractcmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wordbench/pkg/extract"
)

// Command returns the `extract` CLI command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "convert a document to a plain-text corpus file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "source document (.docx, .html or .txt)"},
			&cli.StringFlag{Name: "out", Usage: "corpus output path (default: <input>_clean.txt)"},
		},
		Action: Action,
	}
}

// Action converts one document and reports where the corpus landed.
func Action(c *cli.Context) error {
	input := c.String("input")
	out := c.String("out")
	if out == "" {
		out = defaultCorpusPath(input)
	}

	paragraphs, err := extract.Paragraphs(input)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if err := extract.WriteCorpus(paragraphs, out); err != nil {
		return err
	}

	fmt.Printf("extracted %d paragraphs from %s to %s\n", len(paragraphs), input, out)
	return nil
}

func defaultCorpusPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_clean.txt"
}
