package metadata

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "plus and dots in local part, multi-label domain",
			input:  "Contact: jane.doe+hr@example.co.uk for details",
			expect: "jane.doe+hr@example.co.uk",
		},
		{
			name:   "no at sign",
			input:  "Jane Doe, Backend Engineer, London",
			expect: NotFound,
		},
		{
			name:   "first match wins",
			input:  "old: j.doe@old-mail.com new: jane@new.io",
			expect: "j.doe@old-mail.com",
		},
		{
			name:   "domain without a dot is not an address",
			input:  "ping me at jane@localhost or never",
			expect: NotFound,
		},
		{
			name:   "trailing sentence dot is not part of the domain",
			input:  "Write to jane_doe-1@mail.example.org.",
			expect: "jane_doe-1@mail.example.org",
		},
		{
			name:   "glued to surrounding pdf text",
			input:  "Emailjohn@corp.comPhone",
			expect: "Emailjohn@corp.comPhone",
		},
		{
			name:   "empty text",
			input:  "",
			expect: NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Email(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestClassifyLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect Length
	}{
		{name: "empty", input: "", expect: TooShort},
		{name: "299 words", input: words(299), expect: TooShort},
		{name: "300 words", input: words(300), expect: GoodLength},
		{name: "1000 words", input: words(1000), expect: GoodLength},
		{name: "1001 words", input: words(1001), expect: TooLong},
		{name: "mixed whitespace", input: strings.ReplaceAll(words(300), " ", "\n\t "), expect: GoodLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyLength(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLengthLabels(t *testing.T) {
	if TooShort.String() != "Too short" || GoodLength.String() != "Good length" || TooLong.String() != "Too long" {
		t.Fatalf("unexpected labels: %q %q %q", TooShort, GoodLength, TooLong)
	}
}
