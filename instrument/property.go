package instrument

import "benchtop/adapters"

// ProcessFunc transforms a value on its way through the get or set path.
type ProcessFunc func(any) any

// Options carries the optional behavior of a property. The zero value means:
// no validation, no value mapping, identity processing, float64 cast.
type Options struct {
	// Validator rejects out-of-range values before anything is written.
	Validator Validator

	// Values is the allowed set handed to the validator and, when MapValues
	// is set, the source of the wire-code translation tables.
	Values Values

	// MapValues enables translation between user values and wire codes.
	MapValues bool

	// GetProcess transforms the parsed reply value just before it is
	// returned. SetProcess transforms the value before validation.
	GetProcess ProcessFunc
	SetProcess ProcessFunc

	// CommandProcess transforms the get command string before it is sent.
	CommandProcess func(string) string

	// PreprocessReply overrides the adapter-level reply preprocessing for
	// this property's reads.
	PreprocessReply func(string) string

	// Cast parses each reply field. Defaults to adapters.CastFloat.
	Cast adapters.Cast

	// CheckSetErrors and CheckGetErrors run the facade's error-check hook
	// after a write or a query.
	CheckSetErrors bool
	CheckGetErrors bool

	// Dynamic allows this property to be overridden per instrument
	// instance at runtime.
	Dynamic bool
}

// Property binds a get and/or set command to validation, mapping, and
// processing rules. One type covers all three kinds; the readable and
// writable flags tell them apart. A Property is immutable once registered
// on an instrument — per-instance variation goes through dynamic overrides.
type Property struct {
	// GetCommand is sent verbatim (after CommandProcess) to query the value.
	GetCommand string

	// SetFormat is the printf-style template the value is rendered into.
	SetFormat string

	// Doc describes the property for interactive listings.
	Doc string

	Options

	readable bool
	writable bool

	mp *mapper
}

// Control builds a read/write property from a get command and a set
// command template.
func Control(getCommand, setFormat, doc string, opts ...Options) *Property {
	p := newProperty(getCommand, setFormat, doc, opts)
	p.readable = true
	p.writable = true
	return p
}

// Measurement builds a read-only property. Setting it fails with
// ErrReadOnly.
func Measurement(getCommand, doc string, opts ...Options) *Property {
	p := newProperty(getCommand, "", doc, opts)
	p.readable = true
	return p
}

// Setting builds a write-only property. Getting it fails with ErrWriteOnly.
func Setting(setFormat, doc string, opts ...Options) *Property {
	p := newProperty("", setFormat, doc, opts)
	p.writable = true
	return p
}

func newProperty(getCommand, setFormat, doc string, opts []Options) *Property {
	p := &Property{
		GetCommand: getCommand,
		SetFormat:  setFormat,
		Doc:        doc,
	}
	if len(opts) > 0 {
		p.Options = opts[0]
	}
	return p
}

// Readable reports whether the property supports Get.
func (p *Property) Readable() bool { return p.readable }

// Writable reports whether the property supports Set.
func (p *Property) Writable() bool { return p.writable }

// mapper returns the translation tables, building them on first use.
func (p *Property) mapper() *mapper {
	if p.mp == nil {
		p.mp = newMapper(p.Values)
	}
	return p.mp
}

// clone copies the property for a per-instance override. The cached mapper
// is dropped so that overridden Values rebuild the tables.
func (p *Property) clone() *Property {
	c := *p
	c.mp = nil
	return &c
}
