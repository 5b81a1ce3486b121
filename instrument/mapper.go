package instrument

import "fmt"

// mapper translates user-facing values to wire codes and back. It is built
// once per property from its allowed Values: an explicit mapping is used
// directly, an ordered sequence maps each element to its 0-based position.
//
// The two directions fail differently on purpose: toWire rejects unknown
// values (the validator should already have caught them), while fromWire
// passes unknown codes through unchanged so that an unexpected instrument
// reply does not hard-fail a read.
type mapper struct {
	forward map[any]any // normalized user value -> wire code
	reverse map[any]any // normalized wire code -> user value
}

func newMapper(values Values) *mapper {
	m := &mapper{
		forward: make(map[any]any),
		reverse: make(map[any]any),
	}
	if values.mapping != nil {
		// Duplicate codes in a non-injective mapping resolve
		// last-write-wins on the reverse table; map iteration order makes
		// the winner unspecified.
		for k, code := range values.mapping {
			m.forward[normalize(k)] = code
			m.reverse[normalize(code)] = k
		}
		return m
	}
	for i, v := range values.seq {
		m.forward[normalize(v)] = i
		m.reverse[normalize(i)] = v
	}
	return m
}

// toWire looks the value up in the forward table.
func (m *mapper) toWire(value any) (any, error) {
	code, ok := m.forward[normalize(value)]
	if !ok {
		return nil, fmt.Errorf("%w: %v has no mapped code", ErrInvalidValue, value)
	}
	return code, nil
}

// fromWire looks the code up in the reverse table, passing unknown codes
// through unchanged.
func (m *mapper) fromWire(code any) any {
	if v, ok := m.reverse[normalize(code)]; ok {
		return v
	}
	return code
}
