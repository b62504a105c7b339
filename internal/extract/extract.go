// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

// MIME types accepted for resume uploads.
const (
	MIMEPlainText = "text/plain"
	MIMEPDF       = "application/pdf"
	MIMEDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var multiWhitespace = regexp.MustCompile(`\s+`)

// Text extracts plain text from an uploaded file based on its MIME
// type. Returns domain.ErrUnsupportedFileType for anything other than
// plain text, PDF or DOCX.
func Text(mime string, data []byte) (string, error) {
	switch mime {
	case MIMEPlainText:
		return clean(string(data)), nil

	case MIMEPDF:
		text, err := pdfText(data)
		if err != nil {
			return "", err
		}
		return clean(text), nil

	case MIMEDocx:
		text, err := docxText(data)
		if err != nil {
			return "", err
		}
		return clean(text), nil

	default:
		return "", fmt.Errorf("%s: %w", mime, domain.ErrUnsupportedFileType)
	}
}

// MIMEForFilename guesses the MIME type from a file extension.
func MIMEForFilename(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return MIMEPDF
	case strings.HasSuffix(lower, ".docx"):
		return MIMEDocx
	case strings.HasSuffix(lower, ".txt"):
		return MIMEPlainText
	default:
		return ""
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// clean collapses whitespace runs so downstream length checks and
// prompts see tidy text.
func clean(text string) string {
	return strings.TrimSpace(multiWhitespace.ReplaceAllString(text, " "))
}
