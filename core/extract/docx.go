package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
)

// extractDOCX reads the main document part of a .docx archive and returns
// its paragraphs joined by newlines. DOCX is a zip containing WordprocessingML;
// visible text lives in <w:t> elements grouped into <w:p> paragraphs.
func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", helper.NewError("open docx", err)
	}
	defer archive.Close()

	var document *zip.File
	for _, file := range archive.File {
		if file.Name == "word/document.xml" {
			document = file
			break
		}
	}
	if document == nil {
		return "", helper.NewError("open docx", fmt.Errorf("missing word/document.xml"))
	}

	reader, err := document.Open()
	if err != nil {
		return "", helper.NewError("read docx", err)
	}
	defer reader.Close()

	return docxText(reader)
}

func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", helper.NewError("parse docx xml", err)
		}

		switch element := token.(type) {
		case xml.StartElement:
			if element.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch element.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(element)
			}
		}
	}

	return sb.String(), nil
}
