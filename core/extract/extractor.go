package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

// SupportedFormats lists the file extensions the extractor understands.
var SupportedFormats = []string{".pdf", ".docx", ".txt", ".md"}

// Extract returns the raw text of a document, dispatching on the file
// extension. Unknown extensions fail with model.ErrUnsupportedFormat.
func Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return extractPDF(path)
	case ".docx":
		return extractDOCX(path)
	case ".txt", ".md":
		return extractPlain(path)
	default:
		return "", helper.NewError("extract text", fmt.Errorf("%w: %s", model.ErrUnsupportedFormat, ext))
	}
}

func extractPlain(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", helper.NewError("read file", err)
	}
	return string(content), nil
}
