// Package comms connects the interactive side with the simulation loop: the
// packet protocol, the unbounded channels carrying it and the loop itself.
package comms

import (
	"errors"
	"sync"
)

var (
	// ErrEmpty reports that nothing is queued right now.
	ErrEmpty = errors.New("channel empty")
	// ErrDisconnected reports that the other end has been closed.
	ErrDisconnected = errors.New("channel disconnected")
)

type queue[T any] struct {
	mu             sync.Mutex
	items          []T
	senderClosed   bool
	receiverClosed bool
}

// Sender is the producing end of a channel. Send never blocks.
type Sender[T any] struct{ q *queue[T] }

// Receiver is the consuming end of a channel. TryRecv never blocks.
type Receiver[T any] struct{ q *queue[T] }

// NewChannel returns the two ends of an unbounded FIFO channel with a single
// producer and a single consumer.
func NewChannel[T any]() (*Sender[T], *Receiver[T]) {
	q := &queue[T]{}
	return &Sender[T]{q: q}, &Receiver[T]{q: q}
}

// Send queues v. It fails once either end has been closed.
func (s *Sender[T]) Send(v T) error {
	s.q.mu.Lock()
	defer s.q.mu.Unlock()
	if s.q.receiverClosed || s.q.senderClosed {
		return ErrDisconnected
	}
	s.q.items = append(s.q.items, v)
	return nil
}

// Close marks the sender gone. Values already queued can still be received.
func (s *Sender[T]) Close() {
	s.q.mu.Lock()
	s.q.senderClosed = true
	s.q.mu.Unlock()
}

// TryRecv removes the oldest queued value. It returns ErrEmpty when nothing is
// queued and ErrDisconnected when nothing is queued and the sender is gone.
func (r *Receiver[T]) TryRecv() (T, error) {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	var zero T
	if len(r.q.items) == 0 {
		if r.q.senderClosed {
			return zero, ErrDisconnected
		}
		return zero, ErrEmpty
	}
	v := r.q.items[0]
	r.q.items[0] = zero
	r.q.items = r.q.items[1:]
	if len(r.q.items) == 0 {
		r.q.items = nil
	}
	return v, nil
}

// Close marks the receiver gone and drops anything queued.
func (r *Receiver[T]) Close() {
	r.q.mu.Lock()
	r.q.receiverClosed = true
	r.q.items = nil
	r.q.mu.Unlock()
}

// UIEnd is the interactive side of a link.
type UIEnd struct {
	Send *Sender[UIPacket]
	Recv *Receiver[SimulatorPacket]
}

// SimEnd is the simulation loop side of a link.
type SimEnd struct {
	Recv *Receiver[UIPacket]
	Send *Sender[SimulatorPacket]
}

// NewLink builds both directions between the interactive side and the loop.
func NewLink() (UIEnd, SimEnd) {
	uiSend, simRecv := NewChannel[UIPacket]()
	simSend, uiRecv := NewChannel[SimulatorPacket]()
	return UIEnd{Send: uiSend, Recv: uiRecv}, SimEnd{Recv: simRecv, Send: simSend}
}

// Close closes both channel ends held by the interactive side.
func (e UIEnd) Close() {
	e.Send.Close()
	e.Recv.Close()
}
