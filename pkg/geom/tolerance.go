package geom

// Tolerance consolidates the absolute epsilons used across the kernel.
// The defaults reproduce the values the drafting operations were tuned
// with; drawings are assumed to live in a bounded coordinate range, so
// absolute rather than scale-relative epsilons are acceptable. Callers
// working at unusual scales can inject their own values.
type Tolerance struct {
	// Cross is the threshold below which a 2D cross product of two
	// direction vectors is treated as zero (parallel lines).
	Cross float64
	// Distance is the threshold below which two points coincide.
	Distance float64
	// Connect is the endpoint-matching tolerance for boundary tracing.
	Connect float64
	// MinArea is the smallest polygon area considered a real boundary.
	MinArea float64
}

// DefaultTolerance returns the legacy absolute epsilon set.
func DefaultTolerance() Tolerance {
	return Tolerance{
		Cross:    1e-10,
		Distance: 1e-6,
		Connect:  0.01,
		MinArea:  0.01,
	}
}
