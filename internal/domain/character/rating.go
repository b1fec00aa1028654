package character

// Action ratings live in [MinRating, MaxRating]. Changing the range only requires touching these.
const (
	MinRating = 0
	MaxRating = 4
)

// ClampRating forces a value into the legal rating range
func ClampRating(value int) int {
	if value < MinRating {
		return MinRating
	}
	if value > MaxRating {
		return MaxRating
	}
	return value
}

// ValidRating reports whether value may be persisted
func ValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}
