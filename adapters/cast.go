package adapters

import (
	"fmt"
	"strconv"
	"strings"
)

// Cast converts one reply field into a typed value.
type Cast func(field string) (any, error)

// CastFloat parses a field as a float64. This is the default cast.
func CastFloat(field string) (any, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CastInt parses a field as an int. A trailing fraction is rejected.
func CastInt(field string) (any, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CastString returns the field with surrounding whitespace trimmed.
func CastString(field string) (any, error) {
	return strings.TrimSpace(field), nil
}

// CastBool parses a field as a boolean. Instruments commonly reply with
// "0"/"1" as well as "ON"/"OFF".
func CastBool(field string) (any, error) {
	switch strings.ToUpper(strings.TrimSpace(field)) {
	case "1", "ON", "TRUE":
		return true, nil
	case "0", "OFF", "FALSE":
		return false, nil
	}
	return nil, fmt.Errorf("cannot parse %q as bool", field)
}
