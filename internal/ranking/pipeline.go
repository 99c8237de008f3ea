// Package ranking orders a batch of résumés by their similarity to a job
// description and renders the result as a table.
package ranking

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/extract"
	"github.com/spigell/resume-ranker/internal/metadata"
	"github.com/spigell/resume-ranker/internal/scoring"
	"github.com/spigell/resume-ranker/internal/validation"
)

// Document is an uploaded résumé: its original file name and raw bytes.
type Document struct {
	Name    string
	Content []byte
}

// TextExtractor turns a document's bytes into plain text.
type TextExtractor interface {
	Text(name string, data []byte) (string, error)
}

// Scorer scores every résumé text against the job description in one batch.
// It must return one score per résumé, in input order.
type Scorer interface {
	Score(jobDescription string, resumes []string) ([]float64, error)
}

// Pipeline runs validation, extraction, scoring and ordering for one batch.
// It keeps no state between runs.
type Pipeline struct {
	extractor TextExtractor
	scorer    Scorer
	limits    validation.Limits
	logger    *zap.Logger
}

func New(extractor TextExtractor, scorer Scorer, limits validation.Limits, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		extractor: extractor,
		scorer:    scorer,
		limits:    limits.WithDefaults(),
		logger:    logger,
	}
}

// NewDefault wires the PDF extractor and the tf-idf scorer.
func NewDefault(limits validation.Limits, logger *zap.Logger) *Pipeline {
	return New(extract.NewPDF(logger), scoring.TFIDF{}, limits, logger)
}

// Limits returns the batch limits the pipeline enforces.
func (p *Pipeline) Limits() validation.Limits {
	return p.limits
}

// WithLogger returns a copy of the pipeline that logs to logger.
func (p *Pipeline) WithLogger(logger *zap.Logger) *Pipeline {
	clone := *p
	if logger != nil {
		clone.logger = logger
	}
	return &clone
}

// Rank validates the batch, extracts every document, scores them together and
// returns one row per document ordered by score, highest first. Equal scores
// keep input order.
//
// Any document that fails extraction aborts the whole run with its
// *extract.DocumentError. No partial table is returned.
func (p *Pipeline) Rank(jobDescription string, docs []Document) (*Table, error) {
	if err := validation.Validate(p.limits, toBatch(jobDescription, docs), p.logger); err != nil {
		return nil, err
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		text, err := p.extractor.Text(doc.Name, doc.Content)
		if err != nil {
			if _, ok := extract.AsDocumentError(err); !ok {
				err = &extract.DocumentError{Name: doc.Name, Err: err}
			}
			p.logger.Warn("extracting resume text",
				zap.String("resume", doc.Name),
				zap.Error(err),
			)
			return nil, err
		}

		texts[i] = text
		p.logger.Debug("resume extracted",
			zap.String("resume", doc.Name),
			zap.String("progress", fmt.Sprintf("%d/%d", i+1, len(docs))),
			zap.Int("words", metadata.WordCount(text)),
		)
	}

	scores, err := p.scorer.Score(jobDescription, texts)
	if err != nil {
		return nil, fmt.Errorf("scoring resumes: %w", err)
	}

	if len(scores) != len(docs) {
		return nil, fmt.Errorf("scorer returned %d scores for %d resumes", len(scores), len(docs))
	}

	rows := make([]Result, len(docs))
	for i, doc := range docs {
		rows[i] = Result{
			Resume: doc.Name,
			Score:  scores[i],
			Rank:   LabelFor(scores[i]),
			Email:  metadata.Email(texts[i]),
			Length: metadata.ClassifyLength(texts[i]),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	table := &Table{Rows: rows}

	fields := []zap.Field{zap.Int("resumes", table.Len())}
	if top := table.Top(); top != nil {
		fields = append(fields,
			zap.String("top_resume", top.Resume),
			zap.Float64("top_score", top.Score),
		)
	}
	p.logger.Info("ranking completed", fields...)

	return table, nil
}

// RankCSV ranks the batch and renders it as CSV.
func (p *Pipeline) RankCSV(jobDescription string, docs []Document) (string, error) {
	table, err := p.Rank(jobDescription, docs)
	if err != nil {
		return "", err
	}
	return table.CSV()
}

func toBatch(jobDescription string, docs []Document) *validation.Batch {
	uploads := make([]validation.Upload, len(docs))
	for i, doc := range docs {
		uploads[i] = validation.Upload{Name: doc.Name, Size: int64(len(doc.Content))}
	}
	return &validation.Batch{JobDescription: jobDescription, Uploads: uploads}
}
