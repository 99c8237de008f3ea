package ranking

// Label is the categorical rank derived from a score.
type Label string

const (
	Excellent        Label = "Excellent"
	Good             Label = "Good"
	NeedsImprovement Label = "Needs Improvement"
)

const (
	excellentFrom = 80
	goodFrom      = 50
)

func (l Label) String() string { return string(l) }

// LabelFor maps a 0-100 score to its label: 80 and above is Excellent,
// 50 up to 80 is Good, anything lower Needs Improvement.
func LabelFor(score float64) Label {
	switch {
	case score >= excellentFrom:
		return Excellent
	case score >= goodFrom:
		return Good
	default:
		return NeedsImprovement
	}
}
