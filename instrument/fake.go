package instrument

import "benchtop/adapters"

// FakeInstrument is an Instrument over an in-memory fake transport. Written
// commands are bounced back on read, which makes the full set-then-get path
// of a property testable without hardware.
type FakeInstrument struct {
	*Instrument
	transport *adapters.FakeTransport
}

// NewFake creates a FakeInstrument with an empty bounce buffer.
func NewFake() *FakeInstrument {
	t := adapters.NewFakeTransport()
	return &FakeInstrument{
		Instrument: New("fake", adapters.New(t)),
		transport:  t,
	}
}

// Transport exposes the fake transport for queueing canned replies and
// inspecting state.
func (f *FakeInstrument) Transport() *adapters.FakeTransport {
	return f.transport
}
