// Package iopool runs blocking file work on a single background worker and
// hands the results back through futures polled once per frame.
package iopool

import (
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("io pool closed")
	// ErrDisconnected is the result of a job that ended without reporting.
	ErrDisconnected = errors.New("io job ended without a result")
)

// Pool executes submitted jobs one at a time in submission order.
type Pool struct {
	mu     sync.Mutex
	jobs   []func()
	closed bool
	wake   chan struct{}

	g errgroup.Group
}

// New starts the worker.
func New() *Pool {
	p := &Pool{wake: make(chan struct{}, 1)}
	p.g.Go(p.work)
	return p
}

// Submit queues job. It never blocks.
func (p *Pool) Submit(job func()) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.jobs = append(p.jobs, job)
	p.mu.Unlock()
	p.signal()
	return nil
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.signal()
	return p.g.Wait()
}

func (p *Pool) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Pool) work() error {
	for {
		p.mu.Lock()
		if len(p.jobs) == 0 {
			closed := p.closed
			p.mu.Unlock()
			if closed {
				return nil
			}
			<-p.wake
			continue
		}
		job := p.jobs[0]
		p.jobs[0] = nil
		p.jobs = p.jobs[1:]
		p.mu.Unlock()
		run(job)
	}
}

func run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("iopool: job panicked: %v", r)
		}
	}()
	job()
}
