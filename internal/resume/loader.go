// Package resume extracts plain text from resume files.
package resume

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Load reads the file and returns its textual content. Plain-text formats
// are returned as-is; pdf and docx files have their text extracted.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading resume: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return string(data), nil
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported resume format: %s", filepath.Ext(path))
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		builder.WriteString(text)
	}

	return builder.String(), nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	// GetContent returns the raw document XML; flatten it to plain text.
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")

	return strings.TrimSpace(content), nil
}
