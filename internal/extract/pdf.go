// Package extract turns uploaded PDF bytes into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ErrEmptyDocument is returned for zero-length content.
var ErrEmptyDocument = errors.New("document is empty")

// DocumentError reports a document whose bytes cannot be parsed as PDF.
type DocumentError struct {
	Name string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %q: %v", e.Name, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// AsDocumentError reports whether err is, or wraps, a document error.
func AsDocumentError(err error) (*DocumentError, bool) {
	var derr *DocumentError
	if errors.As(err, &derr) {
		return derr, true
	}
	return nil, false
}

// PDF extracts text page by page.
type PDF struct {
	logger *zap.Logger
}

func NewPDF(logger *zap.Logger) *PDF {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDF{logger: logger}
}

// Text concatenates the plain text of every page in page order, with no
// separator. Pages without extractable text contribute nothing; a document
// with no text at all yields "". Content that is not a readable PDF returns
// a *DocumentError carrying name.
func (p *PDF) Text(name string, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", &DocumentError{Name: name, Err: ErrEmptyDocument}
	}

	// The parser panics on some corrupt cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DocumentError{Name: name, Err: fmt.Errorf("parse pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DocumentError{Name: name, Err: fmt.Errorf("read pdf: %w", err)}
	}

	var builder strings.Builder
	total := reader.NumPage()

	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Debug("page has no extractable text",
				zap.String("resume", name),
				zap.Int("page", pageIndex),
				zap.Error(err),
			)
			continue
		}

		builder.WriteString(pageText)
	}

	p.logger.Debug("extracted pdf text",
		zap.String("resume", name),
		zap.Int("pages", total),
		zap.Int("text_length", builder.Len()),
	)

	return builder.String(), nil
}
