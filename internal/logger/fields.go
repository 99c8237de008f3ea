package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID is the structured log field key for the ranking run identifier.
	FieldRunID = "run_id"
	// FieldJobTitle is the structured log field key for the optional job title.
	FieldJobTitle = "job_title"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// RunFields returns the fields that identify a single ranking run.
func RunFields(runID, jobTitle string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRunID, Value: runID},
		StringField{Key: FieldJobTitle, Value: jobTitle},
	)
}

// WithRunFields attaches the run fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithRunFields(logger *zap.Logger, runID, jobTitle string) *zap.Logger {
	return WithFields(logger, RunFields(runID, jobTitle)...)
}
