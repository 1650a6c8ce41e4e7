package comms

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"infinite-life/internal/core"
	"infinite-life/pkg/sim"
)

// ErrUIDisconnected ends the loop when the interactive side has gone away.
var ErrUIDisconnected = errors.New("ui side disconnected")

// DefaultIdleSleep is how long a stopped loop waits between packet polls.
const DefaultIdleSleep = 100 * time.Millisecond

// Option configures Start.
type Option func(*loop)

// WithIdleSleep changes the poll interval used while stopped.
func WithIdleSleep(d time.Duration) Option {
	return func(l *loop) { l.idleSleep = d }
}

// WithCallback runs fn once per loop iteration after the packets are applied.
// fn must be quick; it runs on the loop goroutine.
func WithCallback(fn func(running bool)) Option {
	return func(l *loop) { l.callback = fn }
}

// Handle tracks a running loop.
type Handle struct {
	g *errgroup.Group
}

// Wait blocks until the loop exits. It returns nil after Terminate.
func (h *Handle) Wait() error { return h.g.Wait() }

type loop struct {
	sim sim.Simulator
	in  *Receiver[UIPacket]
	out *Sender[SimulatorPacket]

	idleSleep time.Duration
	callback  func(running bool)
	limiter   *core.Interval

	running      bool
	until        *uint64
	rateLimited  bool
	displayStale bool
}

// Run runs the simulation loop for s on its own goroutine. The outbound
// sender is closed when the loop exits.
func Run(s sim.Simulator, in *Receiver[UIPacket], out *Sender[SimulatorPacket], opts ...Option) *Handle {
	l := &loop{
		sim:       s,
		in:        in,
		out:       out,
		idleSleep: DefaultIdleSleep,
		limiter:   core.NewInterval(time.Second),
	}
	for _, opt := range opts {
		opt(l)
	}
	g := new(errgroup.Group)
	g.Go(func() error {
		defer out.Close()
		return l.run()
	})
	return &Handle{g: g}
}

func (l *loop) run() error {
	for {
		terminate, err := l.drain()
		if err != nil || terminate {
			return err
		}

		if l.callback != nil {
			l.callback(l.running)
		}

		if !l.running {
			if l.displayStale {
				if err := l.updateDisplay(); err != nil {
					return err
				}
			}
			time.Sleep(l.idleSleep)
			continue
		}

		if l.until != nil && l.sim.Generation() >= *l.until {
			l.running = false
			l.until = nil
			continue
		}

		if l.rateLimited {
			l.limiter.Wait()
		}

		l.sim.Tick()
		if err := l.updateDisplay(); err != nil {
			return err
		}
	}
}

// updateDisplay keeps the display stale until a snapshot is actually stored,
// so the last generation before stopping is always delivered.
func (l *loop) updateDisplay() error {
	published, err := l.sim.UpdateDisplay()
	if err != nil {
		return err
	}
	l.displayStale = !published
	return nil
}

// drain applies every queued packet in arrival order.
func (l *loop) drain() (bool, error) {
	for {
		p, err := l.in.TryRecv()
		switch {
		case errors.Is(err, ErrEmpty):
			return false, nil
		case err != nil:
			return false, ErrUIDisconnected
		}
		terminate, err := l.apply(p)
		if err != nil || terminate {
			return terminate, err
		}
	}
}

func (l *loop) apply(p UIPacket) (bool, error) {
	switch p := p.(type) {
	case DisplayArea:
		l.sim.SetDisplayArea(p.Area)
		l.displayStale = true
	case Set:
		l.sim.Set(p.Position, p.Cell)
		l.displayStale = true
	case SaveBoard:
		return false, l.send(BoardSave{Save: sim.SaveBoard(l.sim)})
	case LoadBoard:
		sim.LoadBoard(l.sim, p.Save)
		l.displayStale = true
	case SaveBlueprint:
		return false, l.send(BlueprintSave{Blueprint: sim.SaveBlueprint(l.sim, p.Area)})
	case LoadBlueprint:
		sim.LoadBlueprint(l.sim, p.Origin, p.Blueprint)
		l.displayStale = true
	case Start:
		l.running = true
		l.until = nil
	case StartUntil:
		target := p.Generation
		l.running = true
		l.until = &target
	case Stop:
		l.running = false
		l.until = nil
	case SimulationSpeed:
		period := p.Speed.Period()
		l.rateLimited = period > 0
		if l.rateLimited {
			l.limiter.SetPeriod(period)
			l.limiter.Reset()
		}
	case Terminate:
		return true, nil
	default:
		return false, fmt.Errorf("unknown packet %T", p)
	}
	return false, nil
}

func (l *loop) send(p SimulatorPacket) error {
	if err := l.out.Send(p); err != nil {
		return ErrUIDisconnected
	}
	return nil
}
