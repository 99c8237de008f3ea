package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "non-positive limit yields empty preview",
			input:  "Looking for a Python backend engineer",
			limit:  0,
			expect: "",
		},
		{
			name:   "job description shorter than limit",
			input:  "Go developer",
			limit:  20,
			expect: "Go developer",
		},
		{
			name:   "long job description is cut with ellipsis",
			input:  "Looking for a Python backend engineer",
			limit:  11,
			expect: "Looking for...",
		},
		{
			name:   "surrounding whitespace is dropped before counting",
			input:  "\n  SQL experience  \t",
			limit:  3,
			expect: "SQL...",
		},
		{
			name:   "counts runes rather than bytes",
			input:  "Résumé ranking",
			limit:  6,
			expect: "Résumé...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
