package ingest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var xmlTags = regexp.MustCompile(`<[^>]+>`)

// ReadResumeFile loads a resume file from disk and converts it to plain
// text.
func ReadResumeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, err := ExtractFileText(filepath.Base(path), data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// ExtractFileText converts an uploaded file to cleaned plain text,
// dispatching on the filename's extension. Plain text, markdown, PDF
// and DOCX are supported.
func ExtractFileText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case "", ".txt", ".md", ".text":
		return CleanText(string(data)), nil
	case ".pdf":
		text, err := pdfText(data)
		if err != nil {
			return "", err
		}
		return CleanText(text), nil
	case ".docx":
		text, err := docxText(data)
		if err != nil {
			return "", err
		}
		return CleanText(text), nil
	default:
		return "", fmt.Errorf("unsupported file type %s: use txt, md, pdf or docx", ext)
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	rs, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	return buf.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the raw document XML; turn paragraph and tab
	// marks into whitespace, then strip the remaining tags.
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	return xmlTags.ReplaceAllString(content, " "), nil
}
