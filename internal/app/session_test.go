package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"infinite-life/internal/iopool"
	"infinite-life/internal/storage"
	"infinite-life/pkg/comms"
	"infinite-life/pkg/core"
	"infinite-life/pkg/persistence"
	"infinite-life/pkg/sim"
	"infinite-life/pkg/sims/sparse"
)

type harness struct {
	session *Session
	handle  *comms.Handle
	store   *storage.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	display := sim.NewSharedDisplay()
	ui, simEnd := comms.NewLink()
	handle := comms.Run(sparse.New(display), simEnd.Recv, simEnd.Send, comms.WithIdleSleep(time.Millisecond))

	pool := iopool.New()
	root := t.TempDir()
	store := storage.New(pool, filepath.Join(root, "saves"), filepath.Join(root, "blueprints"))
	view := core.NewArea(core.Pos(0, 0), core.Pos(15, 15))
	s := NewSession(ui, display, store, view)

	h := &harness{session: s, handle: handle, store: store}
	t.Cleanup(func() {
		s.Close()
		_ = handle.Wait()
		_ = pool.Close()
	})
	return h
}

func (h *harness) until(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		h.session.Frame()
		if err := h.session.Fatal(); err != nil {
			t.Fatalf("session failed while waiting for %s: %v", what, err)
		}
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func (h *harness) cellIs(pos core.GlobalPosition, want core.Cell) func() bool {
	return func() bool {
		_, ok := h.session.Snapshot()
		return ok && h.session.CellAt(pos) == want
	}
}

func hasNotice(notices []string, prefix string) bool {
	for _, n := range notices {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}

func TestSessionReceivesSnapshot(t *testing.T) {
	h := newHarness(t)
	h.until(t, "first snapshot", func() bool {
		_, ok := h.session.Snapshot()
		return ok
	})
	d, _ := h.session.Snapshot()
	if d.Area() != h.session.View() {
		t.Fatalf("snapshot area %v, view %v", d.Area(), h.session.View())
	}
}

func TestSessionUndoRedo(t *testing.T) {
	h := newHarness(t)
	p := core.Pos(3, 3)

	h.session.Paint(p, core.Alive)
	h.until(t, "painted cell", h.cellIs(p, core.Alive))
	if !h.session.CanUndo() || h.session.CanRedo() {
		t.Fatal("after paint: can undo, cannot redo")
	}

	h.session.Undo()
	h.until(t, "undone cell", h.cellIs(p, core.Dead))
	if !h.session.CanRedo() {
		t.Fatal("after undo: can redo")
	}

	h.session.Redo()
	h.until(t, "redone cell", h.cellIs(p, core.Alive))

	h.session.Toggle(p)
	h.until(t, "toggled cell", h.cellIs(p, core.Dead))
}

func TestSessionPaintIgnoresRepeats(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		h.session.Paint(core.Pos(1, 1), core.Alive)
	}
	h.session.Paint(core.Pos(2, 1), core.Alive)
	if n := h.session.history.Len(); n != 2 {
		t.Fatalf("history length = %d, want 2", n)
	}
}

func TestSessionStartUntil(t *testing.T) {
	h := newHarness(t)
	for _, p := range []core.GlobalPosition{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}} {
		h.session.Paint(p, core.Alive)
	}
	h.session.SetSpeed(comms.Uncapped)
	h.session.StartUntil(4)
	if !h.session.Running() {
		t.Fatal("StartUntil must mark the session running")
	}
	h.until(t, "run to generation 4", func() bool { return !h.session.Running() })
	if g := h.session.Generation(); g != 4 {
		t.Fatalf("generation = %d", g)
	}
	if !strings.Contains(h.session.StatusLine(), "gen 4") {
		t.Fatalf("status = %q", h.session.StatusLine())
	}
}

func TestSessionPanAndResize(t *testing.T) {
	h := newHarness(t)
	h.session.Paint(core.Pos(20, 20), core.Alive)
	h.session.Pan(core.Pos(10, 10))
	if h.session.View().Min() != core.Pos(10, 10) {
		t.Fatalf("view = %v", h.session.View())
	}
	h.until(t, "panned snapshot", h.cellIs(core.Pos(20, 20), core.Alive))

	h.session.Resize(4, 2)
	want := core.NewArea(core.Pos(10, 10), core.Pos(13, 11))
	if h.session.View() != want {
		t.Fatalf("view after resize = %v", h.session.View())
	}
	h.until(t, "resized snapshot", func() bool {
		d, ok := h.session.Snapshot()
		return ok && d.Area() == want
	})
}

func TestSessionSaveAndLoad(t *testing.T) {
	h := newHarness(t)
	block := []core.GlobalPosition{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}}
	for _, p := range block {
		h.session.Paint(p, core.Alive)
	}
	h.until(t, "painted block", h.cellIs(core.Pos(6, 6), core.Alive))

	h.session.RequestSave(Meta{Name: "block", Tags: []string{"still"}})
	var notices []string
	h.until(t, "save written", func() bool {
		notices = append(notices, h.session.Notices()...)
		return !h.session.Busy()
	})
	if !hasNotice(notices, "saved ") {
		t.Fatalf("notices = %v", notices)
	}

	h.session.RefreshPreviews()
	h.until(t, "preview scan", func() bool { return !h.session.Busy() })
	previews := h.session.Previews()
	if len(previews) != 1 || previews[0].Err != nil {
		t.Fatalf("previews = %+v", previews)
	}
	if p := previews[0].Preview; p.Name != "block" || p.ViewPosition == nil || *p.ViewPosition != core.Pos(0, 0) {
		t.Fatalf("preview = %+v", p)
	}

	h.session.Paint(core.Pos(0, 0), core.Alive)
	h.until(t, "extra cell", h.cellIs(core.Pos(0, 0), core.Alive))

	h.session.LoadBoard(previews[0].Path)
	h.until(t, "loaded board", h.cellIs(core.Pos(0, 0), core.Dead))
	for _, p := range block {
		if h.session.CellAt(p) != core.Alive {
			t.Fatalf("cell %v lost by load", p)
		}
	}
	if h.session.CanUndo() {
		t.Fatal("loading must clear the history")
	}

	h.session.DeleteFiles([]string{previews[0].Path})
	h.until(t, "delete and rescan", func() bool { return !h.session.Busy() })
	if len(h.session.Previews()) != 0 {
		t.Fatalf("previews after delete = %+v", h.session.Previews())
	}
}

func TestSessionBlueprint(t *testing.T) {
	h := newHarness(t)
	h.session.Paint(core.Pos(0, 0), core.Alive)
	h.session.Paint(core.Pos(1, 0), core.Alive)
	h.session.RequestBlueprint(core.NewArea(core.Pos(0, 0), core.Pos(1, 0)), Meta{Name: "pair"})
	h.until(t, "blueprint written", func() bool { return !h.session.Busy() })

	h.session.RefreshPreviews()
	h.until(t, "preview scan", func() bool { return !h.session.Busy() })
	bps := h.session.BlueprintPreviews()
	if len(bps) != 1 || bps[0].Preview.XSize != 1 || bps[0].Preview.YSize != 0 {
		t.Fatalf("blueprint previews = %+v", bps)
	}

	h.session.PlaceBlueprint(bps[0].Path, core.Pos(8, 8))
	h.until(t, "stamped blueprint", h.cellIs(core.Pos(9, 8), core.Alive))
	if h.session.CellAt(core.Pos(8, 8)) != core.Alive {
		t.Fatal("blueprint origin not stamped")
	}
}

func TestSessionLoadFailureIsNotice(t *testing.T) {
	h := newHarness(t)
	h.session.LoadBoard("/nonexistent/file.save")
	var notices []string
	h.until(t, "failed load", func() bool {
		notices = append(notices, h.session.Notices()...)
		return !h.session.Busy()
	})
	if !hasNotice(notices, "load failed") {
		t.Fatalf("notices = %v", notices)
	}
	if h.session.Fatal() != nil {
		t.Fatal("a failed load must not be fatal")
	}
}

func TestSessionMissingDirectoriesListEmpty(t *testing.T) {
	h := newHarness(t)
	h.session.RefreshPreviews()
	h.until(t, "preview scan", func() bool { return !h.session.Busy() })
	if len(h.session.Previews()) != 0 || len(h.session.Notices()) != 0 {
		t.Fatal("missing directories should list nothing without a notice")
	}
}

func TestSessionFreezesWhenSimulationEnds(t *testing.T) {
	h := newHarness(t)
	_ = h.session.ui.Send.Send(comms.Terminate{})
	if err := h.handle.Wait(); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for h.session.Fatal() == nil && time.Now().Before(deadline) {
		h.session.Frame()
		time.Sleep(time.Millisecond)
	}
	if !errors.Is(h.session.Fatal(), comms.ErrDisconnected) {
		t.Fatalf("Fatal() = %v", h.session.Fatal())
	}

	h.session.Paint(core.Pos(1, 1), core.Alive)
	if h.session.CanUndo() {
		t.Fatal("a frozen session must ignore edits")
	}
}

func TestSessionPoisonedDisplayIsFatal(t *testing.T) {
	display := sim.NewSharedDisplay()
	func() {
		defer func() { _ = recover() }()
		_, _ = display.Offer(func() sim.BoardDisplay { panic("boom") })
	}()
	ui, _ := comms.NewLink()
	pool := iopool.New()
	defer pool.Close()
	s := NewSession(ui, display, storage.New(pool, t.TempDir(), t.TempDir()), core.NewArea(core.Pos(0, 0), core.Pos(1, 1)))
	s.Frame()
	if !errors.Is(s.Fatal(), sim.ErrDisplayPoisoned) {
		t.Fatalf("Fatal() = %v", s.Fatal())
	}
}

func TestSessionSaveFormatErrorIsFatal(t *testing.T) {
	h := newHarness(t)
	pool := iopool.New()
	defer pool.Close()
	h.session.writes = append(h.session.writes, iopool.Run(pool, func() (string, error) {
		return "", &persistence.SaveError{Path: "x", Kind: persistence.ErrSaveFormat}
	}))
	deadline := time.Now().Add(5 * time.Second)
	for h.session.Fatal() == nil && time.Now().Before(deadline) {
		h.session.Frame()
		time.Sleep(time.Millisecond)
	}
	if !errors.Is(h.session.Fatal(), persistence.ErrSaveFormat) {
		t.Fatalf("Fatal() = %v", h.session.Fatal())
	}
}
