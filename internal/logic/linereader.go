package logic

// MaxLineLength caps an unterminated line. Older bytes are discarded beyond it.
const MaxLineLength = 200

// LineReader frames a byte stream into LF-terminated lines.
type LineReader struct {
	buf       []byte
	truncated bool // current line has overflowed
	overflows int
}

// NewLineReader creates an empty LineReader.
func NewLineReader() *LineReader {
	return &LineReader{buf: make([]byte, 0, MaxLineLength+1)}
}

// Feed consumes one byte. It returns the completed line (without LF and
// without one trailing CR) when b is a line feed.
func (r *LineReader) Feed(b byte) (string, bool) {
	if b == '\n' {
		line := r.buf
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		s := string(line)
		r.buf = r.buf[:0]
		r.truncated = false
		return s, true
	}

	r.buf = append(r.buf, b)
	if len(r.buf) > MaxLineLength {
		// Keep the most recent MaxLineLength bytes.
		n := copy(r.buf, r.buf[len(r.buf)-MaxLineLength:])
		r.buf = r.buf[:n]
		if !r.truncated {
			r.truncated = true
			r.overflows++
		}
	}
	return "", false
}

// FeedAll consumes p and returns every line completed by it, in order.
func (r *LineReader) FeedAll(p []byte) []string {
	var lines []string
	for _, b := range p {
		if line, ok := r.Feed(b); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// Pending returns the number of buffered bytes not yet terminated.
func (r *LineReader) Pending() int {
	return len(r.buf)
}

// Overflows returns how many lines were truncated.
func (r *LineReader) Overflows() int {
	return r.overflows
}
