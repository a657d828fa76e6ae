package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func buildZip(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextDocx(t *testing.T) {
	data := buildZip(t, map[string]string{
		"word/document.xml": `<w:document><w:body>` +
			`<w:p><w:r><w:t>hello world</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>second paragraph</w:t></w:r></w:p>` +
			`</w:body></w:document>`,
	})

	text, err := Text(context.Background(), data, "docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.HasPrefix(text, "hello world") {
		t.Fatalf("expected text to start with paragraph content, got %q", text)
	}
	if !strings.Contains(text, "second paragraph") {
		t.Fatalf("expected second paragraph in output, got %q", text)
	}
}

func TestTextXlsxUsesSharedStrings(t *testing.T) {
	data := buildZip(t, map[string]string{
		"xl/sharedStrings.xml": `<sst><si><t>revenue</t></si><si><t>q3 totals</t></si></sst>`,
		"xl/workbook.xml":      `<workbook/>`,
	})

	text, err := Text(context.Background(), data, "xlsx")
	if err != nil {
		t.Fatalf("extract xlsx: %v", err)
	}
	if !strings.Contains(text, "revenue") || !strings.Contains(text, "q3 totals") {
		t.Fatalf("expected shared strings in output, got %q", text)
	}
}

func TestTextPptxJoinsSlides(t *testing.T) {
	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": `<p:sld><a:p><a:r><a:t>title slide</a:t></a:r></a:p></p:sld>`,
		"ppt/slides/slide2.xml": `<p:sld><a:p><a:r><a:t>closing slide</a:t></a:r></a:p></p:sld>`,
	})

	text, err := Text(context.Background(), data, "pptx")
	if err != nil {
		t.Fatalf("extract pptx: %v", err)
	}
	if !strings.Contains(text, "title slide") || !strings.Contains(text, "closing slide") {
		t.Fatalf("expected both slides in output, got %q", text)
	}
}

func TestTextLegacyFormatsFail(t *testing.T) {
	for _, fileType := range []string{"doc", "xls", "ppt"} {
		if _, err := Text(context.Background(), []byte("\xd0\xcf\x11\xe0"), fileType); err == nil {
			t.Fatalf("expected error for legacy type %s", fileType)
		}
	}
	if _, err := Text(context.Background(), []byte("x"), "txt"); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestTextCorruptZipFails(t *testing.T) {
	if _, err := Text(context.Background(), []byte("not a zip"), "docx"); err == nil {
		t.Fatal("expected error for corrupt docx payload")
	}
}
