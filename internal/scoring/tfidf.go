package scoring

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Runs of two or more word characters, the usual lexical token.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and splits it into terms.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Model is a term-weighting model fitted over one document set. Terms are
// indexed in lexical order so vectors built from the same model line up.
type Model struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// Fit builds the vocabulary and smoothed inverse document frequencies of docs:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func Fit(docs []string) *Model {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range Tokenize(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return &Model{vocabulary: vocabulary, terms: terms, idf: idf}
}

// Terms returns the vocabulary in index order.
func (m *Model) Terms() []string {
	return append([]string(nil), m.terms...)
}

// IDF returns the inverse document frequency of term and whether it is known.
func (m *Model) IDF(term string) (float64, bool) {
	idx, ok := m.vocabulary[term]
	if !ok {
		return 0, false
	}
	return m.idf[idx], true
}

// Transform returns the L2-normalised tf-idf vector of doc. Terms missing from
// the vocabulary are ignored; a document without known terms yields a zero
// vector.
func (m *Model) Transform(doc string) []float64 {
	vec := make([]float64, len(m.terms))
	for _, term := range Tokenize(doc) {
		if idx, ok := m.vocabulary[term]; ok {
			vec[idx]++
		}
	}

	floats.Mul(vec, m.idf)

	if norm := floats.Norm(vec, 2); norm > 0 {
		floats.Scale(1/norm, vec)
	}

	return vec
}

// FitTransform fits a model over docs and returns every document's vector in
// input order.
func FitTransform(docs []string) (*Model, [][]float64) {
	model := Fit(docs)
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = model.Transform(doc)
	}
	return model, vectors
}

// Cosine returns the cosine of the angle between a and b, or 0 when either
// vector has zero magnitude. Both vectors must come from the same model.
func Cosine(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}
