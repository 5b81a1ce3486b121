package adapters

// FakeTransport bounces written commands back on read so that descriptor
// behavior can be tested without hardware. Writes append to a buffer; a read
// returns the whole buffer and clears it. Queued canned replies, when
// present, are returned before the buffer is consulted.
type FakeTransport struct {
	buffer string
	queue  []string
	closed bool
}

// NewFakeTransport creates an empty FakeTransport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

// NewFakeAdapter creates an Adapter over a fresh FakeTransport.
func NewFakeAdapter() *Adapter {
	return New(NewFakeTransport())
}

// WriteString appends the command to the buffer.
func (t *FakeTransport) WriteString(s string) error {
	t.buffer += s
	return nil
}

// ReadString returns the next queued reply if one exists, otherwise the
// accumulated buffer. The returned data is consumed.
func (t *FakeTransport) ReadString() (string, error) {
	if len(t.queue) > 0 {
		reply := t.queue[0]
		t.queue = t.queue[1:]
		return reply, nil
	}
	reply := t.buffer
	t.buffer = ""
	return reply, nil
}

// QueueReply adds a canned reply returned by subsequent reads before the
// buffer is consulted.
func (t *FakeTransport) QueueReply(replies ...string) {
	t.queue = append(t.queue, replies...)
}

// Close marks the transport closed. It never fails.
func (t *FakeTransport) Close() error {
	t.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (t *FakeTransport) Closed() bool {
	return t.closed
}
