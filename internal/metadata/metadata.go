// Package metadata derives contact and length details from résumé text.
package metadata

import (
	"regexp"
	"strings"
)

// NotFound is returned by Email when the text holds no address.
const NotFound = "Not found"

const (
	minWords = 300
	maxWords = 1000
)

// Length is the length-quality label of a résumé.
type Length string

const (
	TooShort   Length = "Too short"
	GoodLength Length = "Good length"
	TooLong    Length = "Too long"
)

func (l Length) String() string { return string(l) }

// Local part, "@", then at least two dot-separated domain labels.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)+`)

// Email returns the first syntactically valid address in document order.
func Email(text string) string {
	if match := emailPattern.FindString(text); match != "" {
		return match
	}
	return NotFound
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ClassifyLength buckets text by word count. Both bounds belong to GoodLength.
func ClassifyLength(text string) Length {
	words := WordCount(text)
	switch {
	case words < minWords:
		return TooShort
	case words > maxWords:
		return TooLong
	default:
		return GoodLength
	}
}
