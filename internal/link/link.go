// Package link provides the line-oriented serial transport between the host
// and the controller.
package link

// Link is a non-blocking, line-oriented byte transport.
type Link interface {
	// Poll returns whatever bytes have arrived since the last call.
	// It never blocks; it returns nil when nothing is pending.
	Poll() []byte

	// WriteLine sends s followed by a line feed.
	WriteLine(s string) error

	// Close releases the underlying port.
	Close() error
}

// DefaultBaud matches the controller firmware's serial speed.
const DefaultBaud = 115200
