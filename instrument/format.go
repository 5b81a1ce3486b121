package instrument

import (
	"fmt"
	"reflect"
	"strings"
)

// formatCommand renders a printf-style set command template. A scalar value
// fills a single-slot template; a slice fills a multi-slot template in
// order. The number of values must match the number of substitution slots.
// Values are coerced to the kind each verb expects, so an integral float
// formats cleanly through %d and a mapped integer code through %g.
func formatCommand(format string, value any) (string, error) {
	verbs := templateVerbs(format)
	args := valueList(value)
	if len(args) != len(verbs) {
		return "", fmt.Errorf("%w: template %q has %d slots, got %d values",
			ErrFormatMismatch, format, len(verbs), len(args))
	}
	coerced := make([]any, len(args))
	for i, arg := range args {
		c, err := coerceVerb(verbs[i], arg)
		if err != nil {
			return "", fmt.Errorf("template %q slot %d: %w", format, i+1, err)
		}
		coerced[i] = c
	}
	return fmt.Sprintf(format, coerced...), nil
}

// templateVerbs returns the substitution verbs of a printf template in
// order, skipping literal %%.
func templateVerbs(format string) []byte {
	var verbs []byte
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			continue
		}
		// Skip flags, width and precision up to the verb letter.
		for i < len(format) && strings.IndexByte("+-# 0123456789.", format[i]) >= 0 {
			i++
		}
		if i < len(format) {
			verbs = append(verbs, format[i])
		}
	}
	return verbs
}

// valueList flattens a slice value into its elements; any other value is a
// single argument. Strings are scalars, not byte slices.
func valueList(value any) []any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{value}
	}
	args := make([]any, rv.Len())
	for i := range args {
		args[i] = rv.Index(i).Interface()
	}
	return args
}

func coerceVerb(verb byte, v any) (any, error) {
	switch verb {
	case 'd', 'b', 'o', 'x', 'X', 'c':
		return toInt(v)
	case 'e', 'E', 'f', 'F', 'g', 'G':
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return f, nil
	case 's', 'q':
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	case 't':
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("value %v (%T) is not a bool", v, v)
	}
	return v, nil
}

// toInt truncates numeric values toward zero; booleans format as 0 and 1.
func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
