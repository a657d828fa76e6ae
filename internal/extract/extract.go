package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extracts plain text from an uploaded document by file type.
//
// PDF is handled by github.com/ledongthuc/pdf. The OOXML formats (docx, xlsx, pptx)
// are zip containers whose text lives in well-known XML parts. The legacy binary
// formats (doc, xls, ppt) carry no extractable XML; they return an error and the
// caller stores the document with empty text.
func Text(ctx context.Context, data []byte, fileType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch strings.ToLower(strings.TrimSpace(fileType)) {
	case "pdf":
		return extractPDF(data)
	case "docx":
		return extractDOCX(data)
	case "xlsx":
		return extractXLSX(data)
	case "pptx":
		return extractPPTX(data)
	case "doc", "xls", "ppt":
		return "", fmt.Errorf("legacy binary format not supported: %s", fileType)
	default:
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	raw, err := readZipPart(data, "word/document.xml")
	if err != nil {
		return "", err
	}
	return stripOfficeXML(raw), nil
}

func extractXLSX(data []byte) (string, error) {
	// Cell text in xlsx lives in the shared strings part; sheets only reference it.
	raw, err := readZipPart(data, "xl/sharedStrings.xml")
	if err != nil {
		return "", err
	}
	return stripOfficeXML(raw), nil
}

func extractPPTX(data []byte) (string, error) {
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var slides []*zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			slides = append(slides, f)
		}
	}
	if len(slides) == 0 {
		return "", errors.New("no slides found")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].Name < slides[j].Name })

	var parts []string
	for _, slide := range slides {
		raw, err := readFile(slide)
		if err != nil {
			return "", err
		}
		if text := stripOfficeXML(raw); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func readZipPart(data []byte, part string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty document data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == part {
			return readFile(f)
		}
	}
	return "", fmt.Errorf("%s not found", part)
}

func readFile(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// stripOfficeXML collects character data, inserting newlines at paragraph and
// break boundaries shared by the OOXML dialects.
func stripOfficeXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			switch t.Name.Local {
			case "p", "br", "si", "row":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
