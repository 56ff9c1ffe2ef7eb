package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParagraphs_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	content := "First paragraph\n\n   \nSecond paragraph\nThird"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Paragraphs(path)
	if err != nil {
		t.Fatalf("Paragraphs() error = %v", err)
	}

	want := []string{"First paragraph", "Second paragraph", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %v, want %v", got, want)
	}
}

func TestParagraphs_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Paragraphs(path); err == nil {
		t.Error("Paragraphs() on .pdf returned nil error")
	}
}

func TestParagraphs_MissingFile(t *testing.T) {
	if _, err := Paragraphs(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Paragraphs() on missing file returned nil error")
	}
}

// writeDocx builds a minimal WordprocessingML archive.
func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestParagraphs_Docx(t *testing.T) {
	const documentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Chapter One</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>
    <w:p><w:r><w:t>   </w:t></w:r></w:p>
    <w:p/>
    <w:p><w:r><w:t>The End</w:t></w:r></w:p>
  </w:body>
</w:document>`

	path := filepath.Join(t.TempDir(), "doc.docx")
	writeDocx(t, path, documentXML)

	got, err := Paragraphs(path)
	if err != nil {
		t.Fatalf("Paragraphs() error = %v", err)
	}

	want := []string{"Chapter One", "Hello World", "The End"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %v, want %v", got, want)
	}
}

func TestParagraphs_DocxMissingBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("word/other.xml")
	_, _ = w.Write([]byte("<x/>"))
	_ = zw.Close()
	_ = f.Close()

	if _, err := Paragraphs(path); err == nil {
		t.Error("Paragraphs() on docx without document.xml returned nil error")
	}
}

func TestParagraphs_HTML(t *testing.T) {
	const page = `<html><head><title>Sample</title></head><body>
<article>
<h1>Operating Systems</h1>
<p>Processes and threads are the core abstractions.</p>
<p>   </p>
<ul><li>Scheduling</li><li>Memory management</li></ul>
</article>
</body></html>`

	path := filepath.Join(t.TempDir(), "doc.html")
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Paragraphs(path)
	if err != nil {
		t.Fatalf("Paragraphs() error = %v", err)
	}
	if len(got) == 0 {
		t.Fatal("Paragraphs() returned no paragraphs")
	}

	joined := strings.Join(got, "\n")
	for _, want := range []string{"Operating Systems", "Processes and threads are the core abstractions.", "Scheduling"} {
		if !strings.Contains(joined, want) {
			t.Errorf("extracted text missing %q in:\n%s", want, joined)
		}
	}
	for _, p := range got {
		if strings.TrimSpace(p) == "" {
			t.Error("empty paragraph survived extraction")
		}
	}
}

func TestWriteCorpus(t *testing.T) {
	out := filepath.Join(t.TempDir(), "corpus.txt")
	if err := WriteCorpus([]string{"one", "two"}, out); err != nil {
		t.Fatalf("WriteCorpus() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo" {
		t.Errorf("corpus = %q, want %q", data, "one\ntwo")
	}
}
