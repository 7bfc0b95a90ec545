package link

import (
	"bufio"
	"net"
	"testing"
	"time"
)

func pollUntil(t *testing.T, l *SerialLink, want int) []byte {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var got []byte
	for time.Now().Before(deadline) {
		got = append(got, l.Poll()...)
		if len(got) >= want {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d bytes, got %q", want, got)
	return nil
}

func TestSerialLinkPollReceives(t *testing.T) {
	port, peer := net.Pipe()
	l := New(port)
	defer l.Close()
	defer peer.Close()

	if got := l.Poll(); got != nil {
		t.Errorf("expected nothing pending, got %q", got)
	}

	go peer.Write([]byte("LED 1 2 3\n"))

	got := pollUntil(t, l, 10)
	if string(got) != "LED 1 2 3\n" {
		t.Errorf("got %q", got)
	}
}

func TestSerialLinkWriteLine(t *testing.T) {
	port, peer := net.Pipe()
	l := New(port)
	defer l.Close()
	defer peer.Close()

	lineCh := make(chan string, 1)
	go func() {
		s, _ := bufio.NewReader(peer).ReadString('\n')
		lineCh <- s
	}()

	if err := l.WriteLine("RGBIS 1 2 3"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}

	select {
	case s := <-lineCh:
		if s != "RGBIS 1 2 3\n" {
			t.Errorf("got %q", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for line")
	}
}

func TestSerialLinkCloseIdempotent(t *testing.T) {
	port, peer := net.Pipe()
	defer peer.Close()
	l := New(port)

	if err := l.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestOpenRequiresPort(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("expected error without a port")
	}
}

func TestFakeLink(t *testing.T) {
	f := NewFakeLink("Hal", "lo\n")
	if string(f.Poll()) != "Hal" || string(f.Poll()) != "lo\n" {
		t.Error("chunks not delivered in order")
	}
	if f.Poll() != nil {
		t.Error("expected nil once exhausted")
	}

	var seen string
	f.OnWrite = func(s string) { seen = s }
	f.WriteLine("GETRGB")
	if len(f.Written) != 1 || seen != "GETRGB" {
		t.Errorf("written: %q, seen: %q", f.Written, seen)
	}
}
