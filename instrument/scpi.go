package instrument

import (
	"fmt"
	"strconv"
	"strings"

	"benchtop/adapters"
)

// SCPIInstrument is an Instrument preloaded with the IEEE 488.2 common
// properties every SCPI instrument answers, plus an error-check hook that
// polls the error queue. Vendor-specific command catalogs stay out of this
// package; drivers register their own properties on top.
type SCPIInstrument struct {
	*Instrument
}

// NewSCPI creates a SCPI instrument facade over the given adapter.
func NewSCPI(name string, a *adapters.Adapter) *SCPIInstrument {
	s := &SCPIInstrument{Instrument: New(name, a)}
	s.Register("id", Measurement("*IDN?", "identification of the instrument",
		Options{Cast: adapters.CastString}))
	s.Register("status", Measurement("*STB?", "status byte register",
		Options{Cast: adapters.CastInt}))
	s.Register("complete", Measurement("*OPC?", "operation complete flag",
		Options{Cast: adapters.CastInt}))
	s.ErrorCheck = s.CheckError
	return s
}

// Reset sends *RST.
func (s *SCPIInstrument) Reset() error {
	return s.Write("*RST")
}

// Clear sends *CLS, clearing the status registers and the error queue.
func (s *SCPIInstrument) Clear() error {
	return s.Write("*CLS")
}

// CheckError polls SYST:ERR? once and returns an *InstrumentError when the
// instrument reports a fault. Error code 0 means the queue is empty.
func (s *SCPIInstrument) CheckError() error {
	reply, err := s.Ask("SYST:ERR?")
	if err != nil {
		return err
	}
	ierr, err := parseSystemError(reply)
	if err != nil {
		return err
	}
	if ierr != nil {
		return ierr
	}
	return nil
}

// parseSystemError parses a SYST:ERR? reply of the form
//
//	-113,"Undefined header"
//
// A nil *InstrumentError means no error was queued.
func parseSystemError(reply string) (*InstrumentError, error) {
	code, message, found := strings.Cut(strings.TrimSpace(reply), ",")
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("malformed error queue reply %q: %w", reply, err)
	}
	if n == 0 {
		return nil, nil
	}
	if found {
		message = strings.Trim(strings.TrimSpace(message), `"`)
	}
	return &InstrumentError{Code: n, Message: message}, nil
}
