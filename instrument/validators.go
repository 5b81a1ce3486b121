package instrument

import "fmt"

// Validator checks a value against the allowed Values of a property before
// any command is written. It returns the value (possibly adjusted) or an
// error wrapping ErrInvalidValue.
type Validator func(value any, allowed Values) (any, error)

// StrictDiscreteSet accepts only values that are elements of the allowed
// set (or keys of the allowed mapping). The value is returned unchanged.
func StrictDiscreteSet(value any, allowed Values) (any, error) {
	if !allowed.contains(value) {
		return nil, fmt.Errorf("%w: %v is not in the discrete set %v", ErrInvalidValue, value, allowed.elements())
	}
	return value, nil
}

// StrictRange accepts only numeric values within the inclusive two-element
// bound [low, high]. The value is returned unchanged.
func StrictRange(value any, allowed Values) (any, error) {
	bounds := allowed.elements()
	if len(bounds) != 2 {
		return nil, fmt.Errorf("%w: range requires exactly two bounds, got %d", ErrInvalidValue, len(bounds))
	}
	v, err := toFloat(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	lo, err := toFloat(bounds[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	hi, err := toFloat(bounds[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo || v > hi {
		return nil, fmt.Errorf("%w: %v is outside the range [%v, %v]", ErrInvalidValue, value, lo, hi)
	}
	return value, nil
}
