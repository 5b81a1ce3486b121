package adapters

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"
)

// TCPTransport talks to an instrument over a raw TCP socket, the common
// "socket" mode of LAN-attached bench instruments. Commands are terminated
// with a newline on write; replies are read up to a newline and trimmed.
type TCPTransport struct {
	conn       net.Conn
	reader     *bufio.Reader
	timeout    time.Duration
	terminator string
}

// TCPOptions configures a TCPTransport.
type TCPOptions struct {
	// Timeout bounds each read and write. Zero means no deadline.
	Timeout time.Duration

	// Terminator ends each written command and each read reply.
	// Defaults to "\n".
	Terminator string
}

// DialTCP connects to the instrument at the given host:port address.
func DialTCP(address string, opts TCPOptions) (*TCPTransport, error) {
	conn, err := net.DialTimeout("tcp", address, opts.Timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	terminator := opts.Terminator
	if terminator == "" {
		terminator = "\n"
	}
	return &TCPTransport{
		conn:       conn,
		reader:     bufio.NewReader(conn),
		timeout:    opts.Timeout,
		terminator: terminator,
	}, nil
}

// WriteString sends one terminated command.
func (t *TCPTransport) WriteString(s string) error {
	if err := t.setDeadline(); err != nil {
		return err
	}
	_, err := t.conn.Write([]byte(s + t.terminator))
	return err
}

// ReadString reads one reply up to the terminator. The terminator and any
// trailing carriage return are stripped.
func (t *TCPTransport) ReadString() (string, error) {
	if err := t.setDeadline(); err != nil {
		return "", err
	}
	reply, err := t.reader.ReadString(t.terminator[len(t.terminator)-1])
	if err != nil {
		return "", err
	}
	reply = strings.TrimSuffix(reply, t.terminator)
	reply = strings.TrimSuffix(reply, "\r")
	return reply, nil
}

// Close closes the socket.
func (t *TCPTransport) Close() error {
	return t.conn.Close()
}

func (t *TCPTransport) setDeadline() error {
	if t.timeout <= 0 {
		return nil
	}
	return t.conn.SetDeadline(time.Now().Add(t.timeout))
}
