// Package util contains misc internal utilities.
package util

// Limiter is a min/max pair which can check if a value is within its range
type Limiter struct {
	// Min is the lower bound
	Min float64 `json:"min" yaml:"Min"`

	// Max is the upper bound
	Max float64 `json:"max" yaml:"Max"`
}

// Check returns true if Min <= v <= Max.  A zero valued Limiter admits
// nothing except zero; populate both bounds.
func (l Limiter) Check(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// Clamp returns v bounded to the limiter's range
func (l Limiter) Clamp(v float64) float64 {
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}
