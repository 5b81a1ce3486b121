package instrument

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"benchtop/adapters"
)

// Instrument is the user-facing facade for one device. It owns one adapter,
// a registry of named properties, the write-delay clock, and the shutdown
// flag. It is not safe for concurrent use; callers serialize access.
type Instrument struct {
	name    string
	adapter *adapters.Adapter

	props     map[string]*Property
	overrides map[string]*Property

	writeDelay time.Duration
	lastWrite  time.Time

	shutdown bool

	// ErrorCheck, when set, is run after writes and queries of properties
	// declared with CheckSetErrors or CheckGetErrors. A non-nil return is
	// surfaced to the caller of Get or Set.
	ErrorCheck func() error
}

// New creates an instrument facade over the given adapter.
func New(name string, a *adapters.Adapter) *Instrument {
	return &Instrument{
		name:      name,
		adapter:   a,
		props:     make(map[string]*Property),
		overrides: make(map[string]*Property),
	}
}

// Name returns the instrument's display name.
func (in *Instrument) Name() string { return in.name }

// Adapter returns the owned adapter.
func (in *Instrument) Adapter() *adapters.Adapter { return in.adapter }

// SetWriteDelay sets the minimum interval enforced between consecutive
// command transmissions.
func (in *Instrument) SetWriteDelay(d time.Duration) { in.writeDelay = d }

// WriteDelay returns the configured minimum interval.
func (in *Instrument) WriteDelay() time.Duration { return in.writeDelay }

// Register adds a named property to the instrument. Registering the same
// name again replaces the earlier definition.
func (in *Instrument) Register(name string, p *Property) {
	in.props[name] = p
}

// Properties returns the registered property names in sorted order.
func (in *Instrument) Properties() []string {
	names := make([]string, 0, len(in.props))
	for name := range in.props {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Property returns the effective property for a name: the per-instance
// override when one exists, the registered definition otherwise.
func (in *Instrument) Property(name string) (*Property, bool) {
	if p, ok := in.overrides[name]; ok {
		return p, true
	}
	p, ok := in.props[name]
	return p, ok
}

// Override replaces a dynamic property's behavior for this instance only.
// The registered definition is copied, handed to mutate, and stored in the
// per-instance override table; other instances sharing the same definition
// are unaffected. Overriding a property not declared Dynamic fails with
// ErrNotDynamic.
func (in *Instrument) Override(name string, mutate func(p *Property)) error {
	base, ok := in.Property(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	if !base.Dynamic {
		return fmt.Errorf("%w: %s", ErrNotDynamic, name)
	}
	p := base.clone()
	mutate(p)
	p.mp = nil
	in.overrides[name] = p
	return nil
}

// ClearOverride removes a per-instance override, restoring the registered
// definition.
func (in *Instrument) ClearOverride(name string) {
	delete(in.overrides, name)
}

// Get queries a property: send the get command, parse and cast the reply,
// reverse-map the wire code, and run the get processing function. A
// multi-field reply is returned as a []any.
func (in *Instrument) Get(name string) (any, error) {
	p, ok := in.Property(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	if !p.readable {
		return nil, fmt.Errorf("%w: %s", ErrWriteOnly, name)
	}
	command := p.GetCommand
	if p.CommandProcess != nil {
		command = p.CommandProcess(command)
	}
	vals, err := in.Values(command, p.Cast, p.PreprocessReply)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	if p.CheckGetErrors {
		if err := in.checkErrors(); err != nil {
			return nil, fmt.Errorf("get %s: %w", name, err)
		}
	}
	if len(vals) == 1 {
		value := vals[0]
		if p.MapValues {
			value = p.mapper().fromWire(value)
		}
		if p.GetProcess != nil {
			value = p.GetProcess(value)
		}
		return value, nil
	}
	var value any = vals
	if p.GetProcess != nil {
		value = p.GetProcess(value)
	}
	return value, nil
}

// Set writes a property: run the set processing function, validate, map to
// the wire code, render the command template, and send it. Validation and
// mapping failures happen before anything is written.
func (in *Instrument) Set(name string, value any) error {
	p, ok := in.Property(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	if !p.writable {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	if p.SetProcess != nil {
		value = p.SetProcess(value)
	}
	if p.Validator != nil {
		var err error
		value, err = p.Validator(value, p.Values)
		if err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	if p.MapValues {
		var err error
		value, err = p.mapper().toWire(value)
		if err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	command, err := formatCommand(p.SetFormat, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	if err := in.Write(command); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	if p.CheckSetErrors {
		if err := in.checkErrors(); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

// Write sends a raw command, honoring the write-delay.
func (in *Instrument) Write(command string) error {
	in.waitWriteDelay()
	defer in.stampWrite()
	return in.adapter.Write(command)
}

// Read receives a raw reply. Reads do not transmit, so the write-delay does
// not apply.
func (in *Instrument) Read() (string, error) {
	return in.adapter.Read()
}

// Ask sends a command and receives the reply, honoring the write-delay.
func (in *Instrument) Ask(command string) (string, error) {
	in.waitWriteDelay()
	defer in.stampWrite()
	return in.adapter.Ask(command)
}

// Values sends a command and parses the reply into casted fields, honoring
// the write-delay.
func (in *Instrument) Values(command string, cast adapters.Cast, preprocess func(string) string) ([]any, error) {
	in.waitWriteDelay()
	defer in.stampWrite()
	return in.adapter.Values(command, cast, preprocess)
}

// BinaryValues sends a command and decodes the binary block reply, honoring
// the write-delay.
func (in *Instrument) BinaryValues(command string, headerBytes, width int, order binary.ByteOrder) ([]float64, error) {
	in.waitWriteDelay()
	defer in.stampWrite()
	return in.adapter.BinaryValues(command, headerBytes, width, order)
}

// waitWriteDelay sleeps out the remainder of the configured interval since
// the last transmission.
func (in *Instrument) waitWriteDelay() {
	if in.writeDelay <= 0 || in.lastWrite.IsZero() {
		return
	}
	if remaining := in.writeDelay - time.Since(in.lastWrite); remaining > 0 {
		time.Sleep(remaining)
	}
}

func (in *Instrument) stampWrite() {
	in.lastWrite = time.Now()
}

func (in *Instrument) checkErrors() error {
	if in.ErrorCheck == nil {
		return nil
	}
	return in.ErrorCheck()
}

// Shutdown releases the adapter. It is idempotent; only the first call
// closes the transport.
func (in *Instrument) Shutdown() error {
	if in.shutdown {
		return nil
	}
	in.shutdown = true
	return in.adapter.Close()
}

// IsShutdown reports whether Shutdown has run.
func (in *Instrument) IsShutdown() bool { return in.shutdown }

// With runs fn with the instrument and guarantees Shutdown on every exit
// path, including a panic in fn. A shutdown failure is returned only when
// fn itself succeeded.
func With(in *Instrument, fn func(*Instrument) error) (err error) {
	defer func() {
		cerr := in.Shutdown()
		if err == nil {
			err = cerr
		}
	}()
	return fn(in)
}
