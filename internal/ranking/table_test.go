package ranking

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/resume-ranker/internal/metadata"
)

func sampleTable() *Table {
	return &Table{Rows: []Result{
		{Resume: "alice.pdf", Score: 91.5, Rank: Excellent, Email: "alice@example.com", Length: metadata.GoodLength},
		{Resume: "bob, jr.pdf", Score: 52.36, Rank: Good, Email: metadata.NotFound, Length: metadata.TooShort},
		{Resume: "carol.pdf", Score: 7, Rank: NeedsImprovement, Email: "carol@example.org", Length: metadata.TooLong},
	}}
}

const sampleCSV = "Resume,Score,Rank,Email,Resume Length\n" +
	"alice.pdf,91.50,Excellent,alice@example.com,Good length\n" +
	"\"bob, jr.pdf\",52.36,Good,Not found,Too short\n" +
	"carol.pdf,7.00,Needs Improvement,carol@example.org,Too long\n"

func TestCSV(t *testing.T) {
	out, err := sampleTable().CSV()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != sampleCSV {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", out, sampleCSV)
	}
}

func TestToFileReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranked_resumes.csv")
	if err := os.WriteFile(path, []byte(strings.Repeat("stale data\n", 100)), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := sampleTable().ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(got) != sampleCSV {
		t.Fatalf("unexpected file content:\n%s", got)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	path, err := sampleTable().DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(path)

	if !strings.HasPrefix(filepath.Base(path), "ranked_resumes_") || filepath.Ext(path) != ".csv" {
		t.Fatalf("unexpected temp file name %q", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(got) != sampleCSV {
		t.Fatalf("unexpected file content:\n%s", got)
	}
}

func TestReportByRank(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, Result{Resume: "dan.pdf", Score: 88, Rank: Excellent, Email: metadata.NotFound, Length: metadata.TooShort})

	report := table.ReportByRank()

	excellent, ok := report["Excellent"]
	if !ok {
		t.Fatalf("expected Excellent key in report")
	}
	if len(excellent) != 2 {
		t.Fatalf("expected 2 excellent entries, got %d", len(excellent))
	}
	if excellent[0]["resume"] != "alice.pdf" || excellent[1]["resume"] != "dan.pdf" {
		t.Fatalf("unexpected order: %v", excellent)
	}
	if excellent[0]["score"] != "91.50" {
		t.Fatalf("expected score 91.50, got %q", excellent[0]["score"])
	}

	needs := report["Needs Improvement"]
	if len(needs) != 1 || needs[0]["email"] != "carol@example.org" || needs[0]["length"] != "Too long" {
		t.Fatalf("unexpected needs improvement entries: %v", needs)
	}
}

func TestTableHelpers(t *testing.T) {
	table := sampleTable()

	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	if top := table.Top(); top == nil || top.Resume != "alice.pdf" {
		t.Fatalf("unexpected top row %v", top)
	}
	if (&Table{}).Top() != nil {
		t.Fatalf("expected nil top for empty table")
	}
	if row := table.FindByName("carol.pdf"); row == nil || row.Score != 7 {
		t.Fatalf("unexpected row %v", row)
	}
}
