// Package textsource resolves free-text inputs such as the job description
// from either an inline value or a file.
package textsource

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a text value comes from.
type Source struct {
	// Name is used in error messages to give more context about the value.
	Name string
	// Value is inline text provided via flags, form fields or configuration.
	Value string
	// File points to a file holding the text. When set it takes precedence
	// over Value.
	File string
}

// Load returns the resolved text. File wins over Value, the result is always
// trimmed, and an error is returned when nothing usable is left.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "text"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	text := strings.TrimSpace(src.Value)
	if text == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not provided", name)
	}

	return text, nil
}
