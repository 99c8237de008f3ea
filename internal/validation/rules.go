// Package validation enforces the boundary constraints of a ranking run:
// a non-empty job description, a bounded number of PDF files and a per-file
// size cap. The checks are all-or-nothing: one offending file rejects the
// whole batch.
package validation

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultMaxFiles          = 10
	DefaultMaxFileSize int64 = 2 * 1024 * 1024
)

// Limits bounds the size of a ranking batch.
type Limits struct {
	MaxFiles    int   `mapstructure:"max-files" json:"max_files"`
	MaxFileSize int64 `mapstructure:"max-file-size" json:"max_file_size"`
}

// DefaultLimits returns 10 files of at most 2MB each.
func DefaultLimits() Limits {
	return Limits{MaxFiles: DefaultMaxFiles, MaxFileSize: DefaultMaxFileSize}
}

// WithDefaults replaces unset limits with the defaults.
func (l Limits) WithDefaults() Limits {
	if l.MaxFiles <= 0 {
		l.MaxFiles = DefaultMaxFiles
	}
	if l.MaxFileSize <= 0 {
		l.MaxFileSize = DefaultMaxFileSize
	}
	return l
}

// Upload is what the rules need to know about an uploaded file.
type Upload struct {
	Name string
	Size int64
}

// Batch is the input of one ranking run as seen by the rules.
type Batch struct {
	JobDescription string
	Uploads        []Upload
}

// Rule is a single precondition checked before any scoring work begins.
type Rule interface {
	Name() string
	Check(b *Batch) error
}

// Rules returns the standard checks in the order they run.
func Rules(limits Limits) []Rule {
	limits = limits.WithDefaults()
	return []Rule{
		jobDescriptionRule{},
		fileCountRule{limit: limits.MaxFiles},
		fileSizeRule{limit: limits.MaxFileSize},
		pdfFormatRule{},
	}
}

// Run applies the rules sequentially and stops at the first failure.
func Run(rules []Rule, b *Batch, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, rule := range rules {
		if err := rule.Check(b); err != nil {
			logger.Debug("validation rule failed",
				zap.String("rule", rule.Name()),
				zap.Error(err),
			)
			return err
		}
		logger.Debug("validation rule passed", zap.String("rule", rule.Name()))
	}

	return nil
}

// Validate runs the standard rules for limits over b.
func Validate(limits Limits, b *Batch, logger *zap.Logger) error {
	return Run(Rules(limits), b, logger)
}

type jobDescriptionRule struct{}

func (jobDescriptionRule) Name() string { return "job_description" }

func (jobDescriptionRule) Check(b *Batch) error {
	if strings.TrimSpace(b.JobDescription) == "" {
		return EmptyJobDescription()
	}
	return nil
}

type fileCountRule struct {
	limit int
}

func (fileCountRule) Name() string { return "file_count" }

func (r fileCountRule) Check(b *Batch) error {
	if len(b.Uploads) > r.limit {
		return TooManyFiles(len(b.Uploads), r.limit)
	}
	return nil
}

type fileSizeRule struct {
	limit int64
}

func (fileSizeRule) Name() string { return "file_size" }

func (r fileSizeRule) Check(b *Batch) error {
	for _, upload := range b.Uploads {
		if upload.Size > r.limit {
			return FileTooLarge(upload.Name, upload.Size, r.limit)
		}
	}
	return nil
}

type pdfFormatRule struct{}

func (pdfFormatRule) Name() string { return "pdf_format" }

// Format is judged by extension, like a file picker filter. Content that is
// not a parseable PDF is a document error raised later by the extractor.
func (pdfFormatRule) Check(b *Batch) error {
	for _, upload := range b.Uploads {
		if !IsPDFName(upload.Name) {
			return UnsupportedFormat(upload.Name)
		}
	}
	return nil
}

// IsPDFName reports whether name carries a .pdf extension, in any case.
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
