package adapters

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startEchoServer accepts one connection and echoes each received line,
// uppercased, with a CRLF terminator.
func startEchoServer(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")
			if _, err := conn.Write([]byte(strings.ToUpper(line) + "\r\n")); err != nil {
				return
			}
		}
	}()
	return listener.Addr().String()
}

func TestTCPTransport(t *testing.T) {
	addr := startEchoServer(t)
	transport, err := DialTCP(addr, TCPOptions{Timeout: 2 * time.Second})
	require.NoError(t, err)
	defer transport.Close()

	require.NoError(t, transport.WriteString("volt?"))
	reply, err := transport.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "VOLT?", reply, "terminator and carriage return are stripped")
}

func TestTCPAdapterAsk(t *testing.T) {
	addr := startEchoServer(t)
	transport, err := DialTCP(addr, TCPOptions{Timeout: 2 * time.Second})
	require.NoError(t, err)

	a := New(transport)
	defer a.Close()

	reply, err := a.Ask("meas:volt?")
	require.NoError(t, err)
	assert.Equal(t, "MEAS:VOLT?", reply)

	vals, err := a.Values("1.5,2.5", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1.5, 2.5}, vals)
}

func TestDialTCPRefused(t *testing.T) {
	// Grab a port and close it again so the dial is refused.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	_, err = DialTCP(addr, TCPOptions{Timeout: time.Second})
	assert.Error(t, err)
}
