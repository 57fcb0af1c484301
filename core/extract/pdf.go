package extract

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
)

// extractPDF concatenates the plain text of every page, one page per line.
// Pages without extractable text are skipped.
func extractPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", helper.NewError("open pdf", err)
	}
	defer file.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
