package interactions

import (
	"fmt"
	"math"
)

// floatEpsilon is the difference between 1 and the next representable float64.
var floatEpsilon = math.Nextafter(1, 2) - 1

// FloatEqual reports whether a and b are equal within floatEpsilon. Generated
// choice parsers compare number choices with it.
func FloatEqual(a, b float64) bool {
	return math.Abs(a-b) < floatEpsilon
}

// InvalidChoice returns the error for a value matching no choice.
func InvalidChoice(value any) error {
	return fmt.Errorf("%w: %v", ErrInvalidChoice, value)
}
