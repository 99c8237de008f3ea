package ranking

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/spigell/resume-ranker/internal/metadata"
)

// CSVHeader is the fixed column order of the ranked table.
var CSVHeader = []string{"Resume", "Score", "Rank", "Email", "Resume Length"}

type Table struct {
	Rows []Result
}

// Result is one ranked résumé.
type Result struct {
	Resume string          `json:"resume"`
	Score  float64         `json:"score"`
	Rank   Label           `json:"rank"`
	Email  string          `json:"email"`
	Length metadata.Length `json:"resume_length"`
}

func (r Result) record() []string {
	return []string{
		r.Resume,
		FormatScore(r.Score),
		r.Rank.String(),
		r.Email,
		r.Length.String(),
	}
}

// FormatScore renders a score with two decimals, the way it appears in CSV.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Top returns the best row or nil for an empty table.
func (t *Table) Top() *Result {
	if len(t.Rows) == 0 {
		return nil
	}
	return &t.Rows[0]
}

func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		names = append(names, row.Resume)
	}
	return names
}

// Scores returns the row scores in table order. A nil table has none.
func (t *Table) Scores() []float64 {
	if t == nil {
		return nil
	}
	scores := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		scores = append(scores, row.Score)
	}
	return scores
}

func (t *Table) FindByName(name string) *Result {
	for i := range t.Rows {
		if t.Rows[i].Resume == name {
			return &t.Rows[i]
		}
	}
	return nil
}

// WriteCSV writes the header and one record per row. Fields containing
// commas, quotes or newlines are quoted.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writer.Write(row.record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (t *Table) CSV() (string, error) {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToFile writes the CSV to path, replacing any existing file.
func (t *Table) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return t.WriteCSV(file)
}

func (t *Table) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranked_resumes_*.csv")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := t.WriteCSV(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByRank groups rows under their label, keeping score order inside
// each group.
func (t *Table) ReportByRank() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, row := range t.Rows {
		key := row.Rank.String()
		report[key] = append(report[key], map[string]string{
			"resume": row.Resume,
			"score":  FormatScore(row.Score),
			"email":  row.Email,
			"length": row.Length.String(),
		})
	}
	return report
}
