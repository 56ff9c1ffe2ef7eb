package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxDocumentPath is where WordprocessingML keeps the document body.
const docxDocumentPath = "word/document.xml"

// docxParagraphs extracts the text of every w:p element, in order. Tabs and
// line breaks inside a paragraph become whitespace, matching how the
// document renders.
func docxParagraphs(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != docxDocumentPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", docxDocumentPath, err)
		}
		paras, err := parseDocumentXML(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse docx body: %w", err)
		}
		return paras, nil
	}

	return nil, fmt.Errorf("not a Word document: %s missing", docxDocumentPath)
}

// parseDocumentXML walks the WordprocessingML stream and collects paragraph
// text. Only local element names are matched, so the namespace prefix the
// producer chose does not matter.
func parseDocumentXML(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paras []string
	var cur strings.Builder
	depth := 0 // nesting of w:p elements; tables nest paragraphs

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					cur.Reset()
				}
				depth++
			case "t":
				if depth > 0 {
					var s string
					if err := dec.DecodeElement(&s, &t); err != nil {
						return nil, err
					}
					cur.WriteString(s)
				}
			case "tab":
				if depth > 0 {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					cur.WriteByte(' ')
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && depth > 0 {
				depth--
				if depth == 0 {
					paras = append(paras, cur.String())
				}
			}
		}
	}

	return paras, nil
}
