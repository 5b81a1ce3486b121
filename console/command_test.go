package console

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchtop/instrument"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    *Command
		wantErr bool
	}{
		{name: "empty line", line: "", want: nil},
		{name: "whitespace only", line: "   ", want: nil},
		{name: "list", line: "list", want: &Command{Type: CmdList}},
		{name: "help", line: "help", want: &Command{Type: CmdHelp}},
		{name: "quit", line: "quit", want: &Command{Type: CmdQuit}},
		{name: "exit alias", line: "exit", want: &Command{Type: CmdQuit}},
		{name: "get", line: "get voltage", want: &Command{Type: CmdGet, Property: "voltage"}},
		{name: "get without property", line: "get", wantErr: true},
		{name: "set number", line: "set voltage 5", want: &Command{Type: CmdSet, Property: "voltage", Value: 5.0}},
		{name: "set string", line: "set mode remote", want: &Command{Type: CmdSet, Property: "mode", Value: "remote"}},
		{name: "set tuple", line: "set window 5,6", want: &Command{Type: CmdSet, Property: "window", Value: []any{5.0, 6.0}}},
		{name: "set without value", line: "set voltage", wantErr: true},
		{name: "write raw", line: "write VOLT 5", want: &Command{Type: CmdWrite, Raw: "VOLT 5"}},
		{name: "read", line: "read", want: &Command{Type: CmdRead}},
		{name: "ask raw", line: "ask *IDN?", want: &Command{Type: CmdAsk, Raw: "*IDN?"}},
		{name: "values raw", line: "values MEAS?", want: &Command{Type: CmdValues, Raw: "MEAS?"}},
		{name: "delay", line: "delay 100ms", want: &Command{Type: CmdDelay, Delay: 100 * time.Millisecond}},
		{name: "delay invalid", line: "delay soon", wantErr: true},
		{name: "unknown command", line: "frobnicate", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("command mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExecuteRoundTrip(t *testing.T) {
	fake := instrument.NewFake()
	fake.Register("voltage", instrument.Control("VOLT?", "VOLT %g", "output voltage"))

	cmd, err := ParseCommand("set voltage 5")
	require.NoError(t, err)
	assert.False(t, Execute(fake, cmd))

	reply, err := fake.Read()
	require.NoError(t, err)
	assert.Equal(t, "VOLT 5", reply)

	cmd, err = ParseCommand("delay 10ms")
	require.NoError(t, err)
	assert.False(t, Execute(fake, cmd))
	assert.Equal(t, 10*time.Millisecond, fake.WriteDelay())

	cmd, err = ParseCommand("quit")
	require.NoError(t, err)
	assert.True(t, Execute(fake, cmd), "quit stops the console")
}
