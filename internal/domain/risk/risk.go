// Package risk derives discrete dropout-risk categories from classifier
// probabilities.
package risk

// Category is a discrete dropout-risk tier.
type Category string

// Risk categories.
const (
	Low    Category = "Low"
	Medium Category = "Medium"
	High   Category = "High"
)

// Fixed category thresholds. Inclusive lower bounds: exactly 0.70 is High,
// exactly 0.40 is Medium. Not reconfigurable per call.
const (
	HighThreshold   = 0.70
	MediumThreshold = 0.40
)

// DropoutClassIndex is the dropout position in the classifier's
// Graduate/Dropout/Enrolled distribution.
const DropoutClassIndex = 1

// Categorize maps a dropout probability to its category.
func Categorize(p float64) Category {
	switch {
	case p >= HighThreshold:
		return High
	case p >= MediumThreshold:
		return Medium
	default:
		return Low
	}
}

// Score is a derived scoring result. It is always recomputed from a
// feature vector, never patched in place.
type Score struct {
	probability float64
	category    Category
}

// New creates a Score from a dropout probability.
func New(probability float64) Score {
	return Score{probability: probability, category: Categorize(probability)}
}

// Reconstruct rebuilds a stored Score without recomputation (storage
// hydration only).
func Reconstruct(probability float64, category Category) Score {
	return Score{probability: probability, category: category}
}

// Probability returns the dropout probability in [0,1].
func (s Score) Probability() float64 { return s.probability }

// Category returns the derived risk category.
func (s Score) Category() Category { return s.category }

// IsHigh reports whether the score crosses the alerting threshold.
func (s Score) IsHigh() bool { return s.category == High }
