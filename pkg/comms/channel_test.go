package comms

import (
	"errors"
	"testing"
)

func TestChannelFIFO(t *testing.T) {
	tx, rx := NewChannel[int]()
	for i := 0; i < 100; i++ {
		if err := tx.Send(i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	for i := 0; i < 100; i++ {
		v, err := rx.TryRecv()
		if err != nil || v != i {
			t.Fatalf("TryRecv() = %d, %v; want %d", v, err, i)
		}
	}
	if _, err := rx.TryRecv(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("TryRecv on drained channel: %v", err)
	}
}

func TestChannelSenderClosedDrainsFirst(t *testing.T) {
	tx, rx := NewChannel[string]()
	_ = tx.Send("a")
	tx.Close()
	if v, err := rx.TryRecv(); err != nil || v != "a" {
		t.Fatalf("TryRecv() = %q, %v", v, err)
	}
	if _, err := rx.TryRecv(); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("TryRecv after close: %v", err)
	}
	if err := tx.Send("b"); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("Send after close: %v", err)
	}
}

func TestChannelReceiverClosed(t *testing.T) {
	tx, rx := NewChannel[int]()
	rx.Close()
	if err := tx.Send(1); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("Send to closed receiver: %v", err)
	}
}

func TestLinkDirections(t *testing.T) {
	ui, simEnd := NewLink()
	if err := ui.Send.Send(Start{}); err != nil {
		t.Fatal(err)
	}
	p, err := simEnd.Recv.TryRecv()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(Start); !ok {
		t.Fatalf("got %T", p)
	}
	if err := simEnd.Send.Send(BoardSave{}); err != nil {
		t.Fatal(err)
	}
	if _, err := ui.Recv.TryRecv(); err != nil {
		t.Fatal(err)
	}
	ui.Close()
	if _, err := simEnd.Recv.TryRecv(); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("sim side after ui close: %v", err)
	}
	if err := simEnd.Send.Send(BoardSave{}); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("reply after ui close: %v", err)
	}
}

func TestSpeed(t *testing.T) {
	if _, ok := Uncapped.TicksPerSecond(); ok {
		t.Fatal("Uncapped must report no cap")
	}
	if Uncapped.Period() != 0 {
		t.Fatal("Uncapped period must be zero")
	}
	if tps, _ := NewSpeed(0).TicksPerSecond(); tps != DefaultTPS {
		t.Fatalf("NewSpeed(0) = %d tps", tps)
	}
	s := NewSpeed(4)
	if s.Period().Milliseconds() != 250 || s.String() != "4 tps" {
		t.Fatalf("NewSpeed(4) = %v, %s", s.Period(), s)
	}
}
