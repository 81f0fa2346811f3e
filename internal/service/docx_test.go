package service

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("Failed to create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("Failed to write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// TestExtractDocxText verifies text runs are concatenated and paragraphs
// become newlines
func TestExtractDocxText(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>first </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>second</w:t><w:br/><w:t>line</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := ExtractDocxText(buildDocx(t, doc))
	if err != nil {
		t.Fatalf("ExtractDocxText failed: %v", err)
	}

	want := "first paragraph\nsecond\nline"
	if text != want {
		t.Errorf("Extracted text = %q, want %q", text, want)
	}
}

// TestExtractDocxTextInvalid verifies malformed inputs fail cleanly
func TestExtractDocxTextInvalid(t *testing.T) {
	if _, err := ExtractDocxText([]byte("not a zip")); err == nil {
		t.Error("Expected error for non-zip input")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if _, err := w.Create("other.xml"); err != nil {
		t.Fatalf("Failed to create zip entry: %v", err)
	}
	w.Close()

	if _, err := ExtractDocxText(buf.Bytes()); err == nil {
		t.Error("Expected error when word/document.xml is missing")
	}
}
