package adapters

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeTransportBounce(t *testing.T) {
	fake := NewFakeTransport()
	require.NoError(t, fake.WriteString("VOLT 5"))
	require.NoError(t, fake.WriteString(";OUT 1"))

	reply, err := fake.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "VOLT 5;OUT 1", reply, "writes accumulate until read")

	reply, err = fake.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "", reply, "read drains the buffer")
}

func TestFakeTransportQueue(t *testing.T) {
	fake := NewFakeTransport()
	fake.QueueReply("first", "second")
	require.NoError(t, fake.WriteString("buffered"))

	reply, _ := fake.ReadString()
	assert.Equal(t, "first", reply)
	reply, _ = fake.ReadString()
	assert.Equal(t, "second", reply)
	reply, _ = fake.ReadString()
	assert.Equal(t, "buffered", reply, "queue takes precedence over the buffer")
}

func TestFakeTransportClose(t *testing.T) {
	fake := NewFakeTransport()
	assert.False(t, fake.Closed())
	require.NoError(t, fake.Close())
	assert.True(t, fake.Closed())
}

func TestAdapterAsk(t *testing.T) {
	a := NewFakeAdapter()
	reply, err := a.Ask("FREQ?")
	require.NoError(t, err)
	assert.Equal(t, "FREQ?", reply)
}

func TestAdapterValues(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		cast  Cast
		want  []any
	}{
		{name: "single float", reply: "5", want: []any{5.0}},
		{name: "comma separated floats", reply: "1.5,2.5,3.5", want: []any{1.5, 2.5, 3.5}},
		{name: "whitespace around fields", reply: " 1 , 2 ", want: []any{1.0, 2.0}},
		{name: "int cast", reply: "4,5", cast: CastInt, want: []any{4, 5}},
		{name: "string cast", reply: "ON,OFF", cast: CastString, want: []any{"ON", "OFF"}},
		{name: "bool cast", reply: "1,OFF", cast: CastBool, want: []any{true, false}},
		{name: "unparseable field stays string", reply: "5,ERR", want: []any{5.0, "ERR"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewFakeAdapter()
			vals, err := a.Values(tt.reply, tt.cast, nil)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, vals); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdapterValuesSeparator(t *testing.T) {
	a := NewFakeAdapter()
	a.Separator = ";"
	vals, err := a.Values("1;2;3", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, vals)
}

func TestAdapterPreprocessPrecedence(t *testing.T) {
	stripJunk := func(r string) string { return strings.ReplaceAll(r, "JUNK", "") }
	stripNoise := func(r string) string { return strings.ReplaceAll(r, "NOISE", "") }

	a := NewFakeAdapter()
	a.PreprocessReply = stripJunk

	// Adapter-level default applies when no per-call function is given.
	vals, err := a.Values("JUNK5", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{5.0}, vals)

	// The per-call function wins over the adapter default.
	vals, err = a.Values("NOISE7", nil, stripNoise)
	require.NoError(t, err)
	assert.Equal(t, []any{7.0}, vals)

	// Raw reads are never preprocessed.
	require.NoError(t, a.Write("JUNK5"))
	reply, err := a.Read()
	require.NoError(t, err)
	assert.Equal(t, "JUNK5", reply)
}

func TestBinaryValues(t *testing.T) {
	t.Run("float32 little endian with header", func(t *testing.T) {
		payload := []byte("#14")
		for _, f := range []float32{1.5, -2.25} {
			payload = binary.LittleEndian.AppendUint32(payload, math.Float32bits(f))
		}
		fake := NewFakeTransport()
		fake.QueueReply(string(payload))
		a := New(fake)

		vals, err := a.BinaryValues("CURV?", 3, 4, nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.5, -2.25}, vals)
	})

	t.Run("uint16 big endian", func(t *testing.T) {
		payload := make([]byte, 0, 4)
		payload = binary.BigEndian.AppendUint16(payload, 256)
		payload = binary.BigEndian.AppendUint16(payload, 513)
		fake := NewFakeTransport()
		fake.QueueReply(string(payload))
		a := New(fake)

		vals, err := a.BinaryValues("CURV?", 0, 2, binary.BigEndian)
		require.NoError(t, err)
		assert.Equal(t, []float64{256, 513}, vals)
	})

	t.Run("bytes", func(t *testing.T) {
		fake := NewFakeTransport()
		fake.QueueReply(string([]byte{0, 127, 255}))
		a := New(fake)

		vals, err := a.BinaryValues("CURV?", 0, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 127, 255}, vals)
	})

	t.Run("length not a multiple of width", func(t *testing.T) {
		fake := NewFakeTransport()
		fake.QueueReply("abc")
		a := New(fake)

		_, err := a.BinaryValues("CURV?", 0, 2, nil)
		assert.Error(t, err)
	})

	t.Run("header longer than reply", func(t *testing.T) {
		fake := NewFakeTransport()
		fake.QueueReply("ab")
		a := New(fake)

		_, err := a.BinaryValues("CURV?", 5, 1, nil)
		assert.Error(t, err)
	})
}
