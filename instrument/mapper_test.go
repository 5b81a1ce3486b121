package instrument

import (
	"errors"
	"testing"
)

func TestMapperSequence(t *testing.T) {
	m := newMapper(List(4, 5, 6, 7))

	code, err := m.toWire(5)
	if err != nil {
		t.Fatal(err)
	}
	if code != 1 {
		t.Errorf("expected 0-based position 1, got %v", code)
	}

	if v := m.fromWire(1); v != 5 {
		t.Errorf("expected element 5 for code 1, got %v", v)
	}
	// A float code from a float-cast reply matches the int position.
	if v := m.fromWire(1.0); v != 5 {
		t.Errorf("expected element 5 for code 1.0, got %v", v)
	}
}

func TestMapperMapping(t *testing.T) {
	m := newMapper(Mapping(map[any]any{5: 1, 10: 2, 20: 3}))

	code, err := m.toWire(20)
	if err != nil {
		t.Fatal(err)
	}
	if code != 3 {
		t.Errorf("expected code 3, got %v", code)
	}
	if v := m.fromWire(3.0); v != 20 {
		t.Errorf("expected user value 20 for code 3, got %v", v)
	}
}

func TestMapperToWireMiss(t *testing.T) {
	m := newMapper(List(4, 5, 6))
	_, err := m.toWire(99)
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue for unmapped value, got %v", err)
	}
}

func TestMapperFromWirePassThrough(t *testing.T) {
	// Unknown wire codes pass through unchanged so that unexpected replies
	// do not hard-fail a read.
	m := newMapper(List(4, 5, 6))
	if v := m.fromWire(99.0); v != 99.0 {
		t.Errorf("expected pass-through of 99, got %v", v)
	}
	if v := m.fromWire("ERR"); v != "ERR" {
		t.Errorf("expected pass-through of \"ERR\", got %v", v)
	}
}
