package instrument

import "fmt"

// Values is the set of allowed values for a property, given either as an
// ordered sequence or as an explicit value-to-code mapping. Validators check
// membership against the sequence elements or the mapping keys; the value
// mapper derives its translation tables from the same data.
type Values struct {
	seq     []any
	mapping map[any]any
}

// List builds Values from an ordered sequence. When used with value mapping,
// each element's 0-based position becomes its wire code.
func List(vals ...any) Values {
	return Values{seq: vals}
}

// Mapping builds Values from an explicit user-value to wire-code mapping.
func Mapping(m map[any]any) Values {
	return Values{mapping: m}
}

// Range builds the two-element bound used by StrictRange.
func Range(low, high float64) Values {
	return List(low, high)
}

// IsZero reports whether no allowed values were configured.
func (v Values) IsZero() bool {
	return v.seq == nil && v.mapping == nil
}

// contains reports membership, comparing numerics across int and float
// representations. For a mapping, membership is checked against the keys.
func (v Values) contains(x any) bool {
	nx := normalize(x)
	if v.mapping != nil {
		for k := range v.mapping {
			if normalize(k) == nx {
				return true
			}
		}
		return false
	}
	for _, e := range v.seq {
		if normalize(e) == nx {
			return true
		}
	}
	return false
}

// elements returns the sequence elements, or the mapping keys when the
// Values were given as a mapping. Mapping key order is not defined.
func (v Values) elements() []any {
	if v.mapping != nil {
		keys := make([]any, 0, len(v.mapping))
		for k := range v.mapping {
			keys = append(keys, k)
		}
		return keys
	}
	return v.seq
}

// normalize folds all numeric kinds onto float64 so that a value parsed from
// a reply compares equal to the same value written as an int literal.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return v
}

// toFloat converts a numeric value to float64 for range comparison.
func toFloat(v any) (float64, error) {
	if f, ok := normalize(v).(float64); ok {
		return f, nil
	}
	return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
}
