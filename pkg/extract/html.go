package extract

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// blockSelector lists the content-bearing tags that become paragraphs.
const blockSelector = "h1,h2,h3,h4,h5,h6,p,li,pre,blockquote,td,th"

// htmlParagraphs extracts readable paragraphs from a local HTML file.
// go-readability isolates the main article first; if it finds nothing
// usable, the whole document is walked instead.
func htmlParagraphs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	content := string(data)
	var title string

	abs, err := filepath.Abs(path)
	if err == nil {
		pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
		parser := readability.NewParser()
		article, rerr := parser.Parse(strings.NewReader(content), pageURL)
		if rerr == nil && strings.TrimSpace(article.TextContent) != "" {
			content = article.Content
			title = article.Title
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var paras []string
	if t := collapseWhitespace(title); t != "" {
		paras = append(paras, t)
	}
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Only leaf blocks: a <li> containing <p> children would otherwise
		// duplicate its text.
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if text := collapseWhitespace(s.Text()); text != "" {
			paras = append(paras, text)
		}
	})

	return paras, nil
}

// collapseWhitespace joins the non-empty lines of a block into one
// space-separated paragraph.
func collapseWhitespace(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	sc := bufio.NewScanner(strings.NewReader(input))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
