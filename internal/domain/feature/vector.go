package feature

// Vector is a fixed-order numeric encoding of one student record, one
// value per schema field, in schema order.
type Vector []float64

// Len returns the number of entries.
func (v Vector) Len() int { return len(v) }

// Values returns the raw slice for numeric consumers.
func (v Vector) Values() []float64 { return v }
