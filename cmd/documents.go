package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/validation"
)

// collectDocuments reads the given files and the PDFs directly inside the
// given directories. Files named explicitly are read whatever their
// extension, so the pipeline can reject them with a proper error.
func collectDocuments(paths []string, logger *zap.Logger) ([]ranking.Document, error) {
	docs := make([]ranking.Document, 0, len(paths))

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		if !info.IsDir() {
			doc, err := readDocument(path)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		// ReadDir returns entries sorted by name.
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("listing %q: %w", path, err)
		}

		found := 0
		for _, entry := range entries {
			if entry.IsDir() || !validation.IsPDFName(entry.Name()) {
				continue
			}

			doc, err := readDocument(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			found++
		}

		if found == 0 {
			logger.Warn("no pdf files found in directory", zap.String("path", path))
		}
	}

	return docs, nil
}

func readDocument(path string) (ranking.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ranking.Document{}, fmt.Errorf("reading %q: %w", path, err)
	}
	return ranking.Document{Name: filepath.Base(path), Content: data}, nil
}
