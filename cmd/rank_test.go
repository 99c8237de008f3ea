package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-ranker/internal/metadata"
	"github.com/spigell/resume-ranker/internal/ranking"
)

func sampleTable() *ranking.Table {
	return &ranking.Table{Rows: []ranking.Result{
		{Resume: "a.pdf", Score: 52.36, Rank: ranking.Good, Email: "a@example.com", Length: metadata.TooShort},
		{Resume: "b.pdf", Score: 11.14, Rank: ranking.NeedsImprovement, Email: metadata.NotFound, Length: metadata.TooShort},
	}}
}

const sampleCSV = "Resume,Score,Rank,Email,Resume Length\n" +
	"a.pdf,52.36,Good,a@example.com,Too short\n" +
	"b.pdf,11.14,Needs Improvement,Not found,Too short\n"

func TestHandleActionPrint(t *testing.T) {
	var out bytes.Buffer
	if err := handleAction(PromptPrint, sampleTable(), "-", &out, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "Resume") || !strings.Contains(lines[0], "Resume Length") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "a.pdf") || !strings.Contains(lines[1], "52.36") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestHandleActionSaveToStdout(t *testing.T) {
	var out bytes.Buffer
	if err := handleAction(PromptSave, sampleTable(), stdoutOutput, &out, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != sampleCSV {
		t.Fatalf("unexpected csv:\n%s", out.String())
	}
}

func TestHandleActionSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	core, logs := observer.New(zapcore.InfoLevel)

	var out bytes.Buffer
	if err := handleAction(PromptSave, sampleTable(), path, &out, zap.New(core)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", out.String())
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(got) != sampleCSV {
		t.Fatalf("unexpected file content:\n%s", got)
	}
	if logs.FilterMessage("results saved").Len() != 1 {
		t.Fatalf("expected a log entry for the saved file")
	}
}

func TestHandleActionDump(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	if err := handleAction(PromptDump, sampleTable(), "", &bytes.Buffer{}, zap.New(core)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.FilterMessage("dumping result to file").All()
	if len(entries) != 1 {
		t.Fatalf("expected dump log entry, got %d", len(entries))
	}
	filename, _ := entries[0].ContextMap()["filename"].(string)
	defer os.Remove(filename)

	got, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if string(got) != sampleCSV {
		t.Fatalf("unexpected dump content:\n%s", got)
	}
}

func TestHandleActionReport(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	if err := handleAction(PromptReport, sampleTable(), "", &bytes.Buffer{}, zap.New(core)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one report entry, got %d", len(entries))
	}
	if !strings.Contains(entries[0].Message, `"Needs Improvement"`) || !strings.Contains(entries[0].Message, "b.pdf") {
		t.Fatalf("unexpected report %q", entries[0].Message)
	}
}

func TestHandleActionExitAndUnknown(t *testing.T) {
	if err := handleAction(PromptExit, sampleTable(), "", &bytes.Buffer{}, zap.NewNop()); !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}
	if err := handleAction("dance", sampleTable(), "", &bytes.Buffer{}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
