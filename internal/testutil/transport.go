package testutil

import (
	"strings"
	"sync"
)

// Transport is an in-memory connection for driving the game without a
// network. Input is pushed with Send; everything the game writes is kept
// and can be read back with Output or Drain.
type Transport struct {
	addr string
	in   chan []byte

	mu     sync.Mutex
	out    strings.Builder
	closed bool
	// Limit caps how many bytes a single Write accepts; zero means no
	// cap.
	Limit int
}

// NewTransport returns an open transport that reports addr as its remote
// address.
func NewTransport(addr string) *Transport {
	return &Transport{addr: addr, in: make(chan []byte, 64)}
}

func (t *Transport) Kind() string       { return "test" }
func (t *Transport) RemoteAddr() string { return t.addr }

func (t *Transport) Incoming() <-chan []byte { return t.in }

func (t *Transport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, errClosed
	}
	n := len(p)
	if t.Limit > 0 && n > t.Limit {
		n = t.Limit
	}
	t.out.Write(p[:n])
	return n, nil
}

func (t *Transport) EchoOff() []byte { return []byte("<echo off>") }
func (t *Transport) EchoOn() []byte  { return []byte("<echo on>") }

func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Send queues one line of input, adding the line terminator.
func (t *Transport) Send(line string) {
	t.in <- []byte(line + "\r\n")
}

// SendRaw queues b as it is, without a line terminator.
func (t *Transport) SendRaw(b []byte) {
	t.in <- b
}

// Hangup closes the input side as a dropped peer would.
func (t *Transport) Hangup() { close(t.in) }

// Output returns everything written so far.
func (t *Transport) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.String()
}

// Drain returns everything written since the last Drain and forgets it.
func (t *Transport) Drain() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.out.String()
	t.out.Reset()
	return s
}

// Closed reports whether the game has closed the connection.
func (t *Transport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

type closedError struct{}

func (closedError) Error() string { return "transport closed" }

var errClosed error = closedError{}
