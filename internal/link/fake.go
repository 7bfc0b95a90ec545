package link

// FakeLink scripts incoming data and records outgoing lines.
type FakeLink struct {
	// Incoming holds one chunk per Poll call; Poll returns nil once exhausted.
	Incoming [][]byte

	// Written contains every line passed to WriteLine (without terminator).
	Written []string

	// WriteError, if set, will be returned by WriteLine.
	WriteError error

	// OnWrite, if set, is called after each successful WriteLine.
	OnWrite func(line string)

	Closed bool
}

// NewFakeLink creates a FakeLink that delivers the given chunks.
func NewFakeLink(chunks ...string) *FakeLink {
	f := &FakeLink{}
	for _, c := range chunks {
		f.Incoming = append(f.Incoming, []byte(c))
	}
	return f
}

// Push queues another chunk for a later Poll.
func (f *FakeLink) Push(s string) {
	f.Incoming = append(f.Incoming, []byte(s))
}

// Poll returns the next scripted chunk.
func (f *FakeLink) Poll() []byte {
	if len(f.Incoming) == 0 {
		return nil
	}
	chunk := f.Incoming[0]
	f.Incoming = f.Incoming[1:]
	return chunk
}

// WriteLine records s.
func (f *FakeLink) WriteLine(s string) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Written = append(f.Written, s)
	if f.OnWrite != nil {
		f.OnWrite(s)
	}
	return nil
}

// Close marks the link as closed.
func (f *FakeLink) Close() error {
	f.Closed = true
	return nil
}
