package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractText reads an attached document into plain text. PDFs go
// through the embedded text layer page by page; txt/md files are read
// as-is. Anything else is rejected rather than stored as garbage.
func ExtractText(path, fileName string) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return extractPDF(path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", fileName, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document type %q", filepath.Ext(fileName))
	}
}

func extractPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n+1, err)
		}
		sb.WriteString(strings.TrimSpace(text))
		sb.WriteString("\n\n")
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("no extractable text in PDF")
	}
	return result, nil
}
