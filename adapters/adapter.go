package adapters

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Transport moves raw command and reply strings to and from an instrument.
// Implementations exist for TCP sockets, WebSocket bridges, and an in-memory
// fake used in tests. Retry and reconnect policy, if any, belongs to the
// Transport implementation.
type Transport interface {
	// WriteString sends one command string.
	WriteString(s string) error

	// ReadString receives one reply string.
	ReadString() (string, error)

	// Close releases the underlying connection. Closing twice is allowed.
	Close() error
}

// Adapter wraps a Transport with reply parsing: splitting delimited replies
// into casted fields and decoding binary blocks. One Adapter is owned by one
// instrument facade.
type Adapter struct {
	transport Transport

	// Separator splits multi-field replies. Defaults to ",".
	Separator string

	// PreprocessReply, when set, is applied to a reply before it is split
	// and casted by Values. It is never applied to the raw string returned
	// by Read or Ask.
	PreprocessReply func(string) string
}

// New creates an Adapter over the given transport.
func New(t Transport) *Adapter {
	return &Adapter{
		transport: t,
		Separator: ",",
	}
}

// Write sends a command string to the instrument.
func (a *Adapter) Write(command string) error {
	slog.Debug("adapter write", "command", command)
	if err := a.transport.WriteString(command); err != nil {
		return fmt.Errorf("write %q: %w", command, err)
	}
	return nil
}

// Read receives a raw reply string from the instrument.
func (a *Adapter) Read() (string, error) {
	reply, err := a.transport.ReadString()
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	slog.Debug("adapter read", "reply", reply)
	return reply, nil
}

// Ask sends a command and receives the reply.
func (a *Adapter) Ask(command string) (string, error) {
	if err := a.Write(command); err != nil {
		return "", err
	}
	return a.Read()
}

// Values sends a command and parses the reply into a list of casted fields.
// The reply is preprocessed (per-call function first, the Adapter-level
// default otherwise), split on the separator, and each field is casted. A
// field the cast cannot parse is kept as a trimmed string rather than
// failing the whole reply.
func (a *Adapter) Values(command string, cast Cast, preprocess func(string) string) ([]any, error) {
	reply, err := a.Ask(command)
	if err != nil {
		return nil, err
	}
	return a.ParseValues(reply, cast, preprocess), nil
}

// ParseValues parses an already-received reply the same way Values does.
func (a *Adapter) ParseValues(reply string, cast Cast, preprocess func(string) string) []any {
	reply = strings.TrimSpace(reply)
	if preprocess != nil {
		reply = preprocess(reply)
	} else if a.PreprocessReply != nil {
		reply = a.PreprocessReply(reply)
	}
	if cast == nil {
		cast = CastFloat
	}
	sep := a.Separator
	if sep == "" {
		sep = ","
	}
	fields := strings.Split(reply, sep)
	results := make([]any, 0, len(fields))
	for _, field := range fields {
		v, err := cast(field)
		if err != nil {
			// Unparseable fields stay as strings.
			results = append(results, strings.TrimSpace(field))
			continue
		}
		results = append(results, v)
	}
	return results
}

// BinaryValues sends a command and decodes the reply as a binary block:
// headerBytes bytes of header are skipped, the remainder is decoded as
// consecutive elements of the given width in bytes. Width 4 and 8 decode
// IEEE 754 floats, width 1 and 2 decode unsigned integers.
func (a *Adapter) BinaryValues(command string, headerBytes, width int, order binary.ByteOrder) ([]float64, error) {
	reply, err := a.Ask(command)
	if err != nil {
		return nil, err
	}
	if order == nil {
		order = binary.LittleEndian
	}
	data := []byte(reply)
	if headerBytes > len(data) {
		return nil, fmt.Errorf("binary block: header %d bytes exceeds reply length %d", headerBytes, len(data))
	}
	data = data[headerBytes:]
	if width <= 0 {
		return nil, fmt.Errorf("binary block: invalid element width %d", width)
	}
	if len(data)%width != 0 {
		return nil, fmt.Errorf("binary block: payload length %d is not a multiple of width %d", len(data), width)
	}
	values := make([]float64, 0, len(data)/width)
	for i := 0; i+width <= len(data); i += width {
		chunk := data[i : i+width]
		switch width {
		case 1:
			values = append(values, float64(chunk[0]))
		case 2:
			values = append(values, float64(order.Uint16(chunk)))
		case 4:
			values = append(values, float64(math.Float32frombits(order.Uint32(chunk))))
		case 8:
			values = append(values, math.Float64frombits(order.Uint64(chunk)))
		default:
			return nil, fmt.Errorf("binary block: unsupported element width %d", width)
		}
	}
	return values, nil
}

// Close releases the transport.
func (a *Adapter) Close() error {
	return a.transport.Close()
}
