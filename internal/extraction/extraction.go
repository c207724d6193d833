// Package extraction converts uploaded resume documents into plain text.
// All decoding happens in memory; uploaded bytes are never written to
// disk.
package extraction

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported document MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// ExtractionError reports a document that could not be converted to text.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

var (
	bulletGlyphs  = regexp.MustCompile(`[•●■◆▪▫◦○]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	xmlTag        = regexp.MustCompile(`<[^>]+>`)
)

// FromDocument extracts plain text from a document based on its MIME
// type. Unknown types are rejected rather than guessed at.
func FromDocument(mime string, data []byte) (string, error) {
	switch mime {
	case MIMEPDF:
		return FromPDF(data)
	case MIMEDOCX:
		return FromDOCX(data)
	case MIMEText:
		return fromPlainText(data)
	default:
		return "", &ExtractionError{Message: fmt.Sprintf("unsupported document type %q", mime)}
	}
}

// FromPDF extracts the text of every page of a PDF document. Pages are
// joined with blank lines. A PDF that yields no text at all (a scanned
// image, for instance) is an error.
func FromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "opening PDF", Cause: err}
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	return finish(strings.Join(pages, "\n\n"))
}

// FromDOCX extracts the text content of a DOCX document.
func FromDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "opening DOCX", Cause: err}
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	// GetContent returns the document XML; strip the markup and keep the
	// character data.
	content = xmlTag.ReplaceAllString(content, " ")

	return finish(content)
}

func fromPlainText(data []byte) (string, error) {
	return finish(string(data))
}

// finish cleans extracted text and rejects empty results.
func finish(text string) (string, error) {
	text = CleanText(text)
	if text == "" {
		return "", &ExtractionError{Message: "document contains no extractable text; it may be a scanned image"}
	}
	return text, nil
}

// CleanText replaces bullet glyphs with spaces and collapses whitespace
// runs. The resume body becomes a single normalized line of text.
func CleanText(text string) string {
	text = bulletGlyphs.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
