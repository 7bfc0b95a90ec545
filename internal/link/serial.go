package link

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

// Config describes the serial port.
type Config struct {
	Port     string
	BaudRate int
	// ReadTimeout bounds each blocking read in the receive goroutine.
	ReadTimeout time.Duration
}

const rxQueue = 64

// SerialLink moves bytes between a port and the control loop. A receive
// goroutine blocks on the port and hands chunks over a buffered channel, so
// Poll never blocks.
type SerialLink struct {
	port io.ReadWriteCloser
	rx   chan []byte
	done chan struct{}
	wg   sync.WaitGroup

	mu        sync.Mutex // serialises writes
	closeOnce sync.Once
}

// Open opens the serial port and starts receiving.
func Open(cfg Config) (*SerialLink, error) {
	if cfg.Port == "" {
		return nil, errors.New("link: serial port required")
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaud
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 100 * time.Millisecond
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Port, err)
	}
	return New(port), nil
}

// New wraps an already open port.
func New(port io.ReadWriteCloser) *SerialLink {
	l := &SerialLink{
		port: port,
		rx:   make(chan []byte, rxQueue),
		done: make(chan struct{}),
	}
	l.wg.Add(1)
	go l.readLoop()
	return l
}

func (l *SerialLink) readLoop() {
	defer l.wg.Done()
	buf := make([]byte, 256)
	for {
		n, err := l.port.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case l.rx <- chunk:
			case <-l.done:
				return
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, serial.ErrTimeout) {
			select {
			case <-l.done:
				return
			default:
				continue
			}
		}
		select {
		case <-l.done:
		default:
			log.Printf("link: read stopped: %v", err)
		}
		return
	}
}

// Poll drains all received chunks without blocking.
func (l *SerialLink) Poll() []byte {
	var out []byte
	for {
		select {
		case chunk := <-l.rx:
			out = append(out, chunk...)
		default:
			return out
		}
	}
}

// WriteLine sends s terminated by a line feed.
func (l *SerialLink) WriteLine(s string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := io.WriteString(l.port, s+"\n"); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}

// Close stops the receive goroutine and closes the port.
func (l *SerialLink) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.port.Close()
		l.wg.Wait()
	})
	return err
}
