// Package scoring measures lexical similarity between a job description and
// a batch of résumés.
package scoring

import (
	"math"
	"strings"

	"github.com/spigell/resume-ranker/internal/validation"
)

// Score fits one tf-idf model over the job description and all résumés
// together and returns each résumé's cosine similarity to the job
// description as a percentage rounded to two decimals, in input order.
//
// Scores are relative to the batch: the same résumé can score differently
// next to other résumés.
func Score(jobDescription string, resumes []string) ([]float64, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, validation.EmptyJobDescription()
	}

	if len(resumes) == 0 {
		return []float64{}, nil
	}

	docs := make([]string, 0, len(resumes)+1)
	docs = append(docs, jobDescription)
	docs = append(docs, resumes...)

	_, vectors := FitTransform(docs)

	job := vectors[0]
	scores := make([]float64, len(resumes))
	for i, vec := range vectors[1:] {
		scores[i] = Percent(Cosine(job, vec))
	}

	return scores, nil
}

// Percent scales a similarity in [0,1] to [0,100] with two decimals.
func Percent(similarity float64) float64 {
	if math.IsNaN(similarity) || similarity <= 0 {
		return 0
	}
	pct := math.RoundToEven(similarity*100*100) / 100
	return math.Min(pct, 100)
}

// TFIDF is the batch scorer used by the ranking pipeline.
type TFIDF struct{}

func (TFIDF) Score(jobDescription string, resumes []string) ([]float64, error) {
	return Score(jobDescription, resumes)
}
