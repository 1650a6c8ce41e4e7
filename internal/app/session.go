package app

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"infinite-life/internal/history"
	"infinite-life/internal/iopool"
	"infinite-life/internal/storage"
	"infinite-life/pkg/comms"
	"infinite-life/pkg/core"
	"infinite-life/pkg/persistence"
	"infinite-life/pkg/sim"
)

// Meta is the user supplied description of a save or blueprint.
type Meta struct {
	Name        string
	Description string
	Tags        []string
}

type blueprintLoad struct {
	origin core.GlobalPosition
	future *iopool.Future[sim.SimulationBlueprint]
}

// Session is the interactive side of a running simulation. It is driven once
// per frame and never blocks. After a fatal error every call is a no-op.
type Session struct {
	ui      comms.UIEnd
	display *sim.SharedDisplay
	store   *storage.Store
	history history.History

	view        core.Area
	snapshot    sim.BoardDisplay
	hasSnapshot bool

	running   bool
	until     *uint64
	speed     comms.Speed
	lastPaint *history.Action

	fatal   error
	notices []string

	pendingSaves      []Meta
	pendingBlueprints []Meta
	writes            []*iopool.Future[string]
	boardLoad         *iopool.Future[sim.SimulationSave]
	blueprintLoads    []blueprintLoad
	deletes           *iopool.Future[[]persistence.DeleteResult]

	savePreviewScan      *iopool.Future[[]persistence.PreviewResult[persistence.SavePreview]]
	blueprintPreviewScan *iopool.Future[[]persistence.PreviewResult[persistence.BlueprintPreview]]
	savePreviews         []persistence.PreviewResult[persistence.SavePreview]
	blueprintPreviews    []persistence.PreviewResult[persistence.BlueprintPreview]
}

// NewSession takes over the UI end of a link and requests view as the first
// display area.
func NewSession(ui comms.UIEnd, display *sim.SharedDisplay, store *storage.Store, view core.Area) *Session {
	s := &Session{ui: ui, display: display, store: store, view: view, speed: comms.Uncapped}
	s.send(comms.DisplayArea{Area: view})
	return s
}

// Fatal returns the error that froze the session, if any.
func (s *Session) Fatal() error { return s.fatal }

func (s *Session) fail(err error) {
	if s.fatal == nil {
		s.fatal = err
	}
}

func (s *Session) send(p comms.UIPacket) {
	if s.fatal != nil {
		return
	}
	if err := s.ui.Send.Send(p); err != nil {
		s.fail(fmt.Errorf("simulation stopped: %w", err))
	}
}

func (s *Session) notify(format string, args ...any) {
	s.notices = append(s.notices, fmt.Sprintf(format, args...))
}

// Notices returns and clears the notifications raised since the last call.
func (s *Session) Notices() []string {
	n := s.notices
	s.notices = nil
	return n
}

// Frame polls the simulation replies, the display slot and every pending
// background result once.
func (s *Session) Frame() {
	if s.fatal != nil {
		return
	}
	s.pollReplies()
	s.pollDisplay()
	s.pollWrites()
	s.pollLoads()
	s.pollPreviews()
	s.pollDeletes()
}

func (s *Session) pollReplies() {
	for s.fatal == nil {
		p, err := s.ui.Recv.TryRecv()
		if errors.Is(err, comms.ErrEmpty) {
			return
		}
		if err != nil {
			s.fail(fmt.Errorf("simulation stopped: %w", err))
			return
		}
		switch p := p.(type) {
		case comms.BoardSave:
			meta := popMeta(&s.pendingSaves)
			b := persistence.NewSave(p.Save).ViewPosition(s.view.Min())
			s.writes = append(s.writes, s.store.SaveBoard(applyMeta(b, meta)))
		case comms.BlueprintSave:
			meta := popMeta(&s.pendingBlueprints)
			b := persistence.NewBlueprint(p.Blueprint)
			s.writes = append(s.writes, s.store.SaveBlueprint(applyMeta(b, meta)))
		}
	}
}

func popMeta(q *[]Meta) Meta {
	if len(*q) == 0 {
		return Meta{}
	}
	m := (*q)[0]
	*q = (*q)[1:]
	return m
}

func applyMeta(b *persistence.Builder, m Meta) *persistence.Builder {
	return b.Name(m.Name).Description(m.Description).Tags(m.Tags...)
}

func (s *Session) pollDisplay() {
	d, ok, err := s.display.Take()
	if err != nil {
		s.fail(err)
		return
	}
	if !ok {
		return
	}
	s.snapshot = d
	s.hasSnapshot = true
	if s.until != nil && d.Generation() >= *s.until {
		s.running = false
		s.until = nil
	}
}

func (s *Session) pollWrites() {
	remaining := s.writes[:0]
	for _, f := range s.writes {
		r, ok := f.Poll()
		if !ok {
			remaining = append(remaining, f)
			continue
		}
		switch {
		case errors.Is(r.Err, persistence.ErrSaveFormat):
			s.fail(r.Err)
		case r.Err != nil:
			s.notify("save failed: %v", r.Err)
		default:
			s.notify("saved %s", r.Value)
		}
	}
	s.writes = remaining
}

func (s *Session) pollLoads() {
	if r, ok := s.boardLoad.Poll(); ok {
		s.boardLoad = nil
		if r.Err != nil {
			s.notify("load failed: %v", r.Err)
		} else {
			s.history.Clear()
			s.lastPaint = nil
			s.send(comms.LoadBoard{Save: r.Value})
		}
	}

	remaining := s.blueprintLoads[:0]
	for _, l := range s.blueprintLoads {
		r, ok := l.future.Poll()
		if !ok {
			remaining = append(remaining, l)
			continue
		}
		if r.Err != nil {
			s.notify("blueprint failed: %v", r.Err)
			continue
		}
		s.send(comms.LoadBlueprint{Origin: l.origin, Blueprint: r.Value})
	}
	s.blueprintLoads = remaining
}

func (s *Session) pollPreviews() {
	if r, ok := s.savePreviewScan.Poll(); ok {
		s.savePreviewScan = nil
		s.savePreviews = previewsOrNotice(s, r)
	}
	if r, ok := s.blueprintPreviewScan.Poll(); ok {
		s.blueprintPreviewScan = nil
		s.blueprintPreviews = previewsOrNotice(s, r)
	}
}

func previewsOrNotice[T any](s *Session, r iopool.Result[[]persistence.PreviewResult[T]]) []persistence.PreviewResult[T] {
	switch {
	case errors.Is(r.Err, fs.ErrNotExist):
		return nil
	case r.Err != nil:
		s.notify("cannot list files: %v", r.Err)
		return nil
	}
	for _, p := range r.Value {
		if p.Err != nil {
			s.notify("skipped %s: %v", p.Path, p.Err)
		}
	}
	return r.Value
}

func (s *Session) pollDeletes() {
	r, ok := s.deletes.Poll()
	if !ok {
		return
	}
	s.deletes = nil
	if r.Err != nil {
		s.notify("delete failed: %v", r.Err)
	}
	for _, d := range r.Value {
		if d.Err != nil {
			s.notify("delete failed: %v", d.Err)
		}
	}
	s.RefreshPreviews()
}

// Snapshot returns the most recent display received from the simulation.
func (s *Session) Snapshot() (sim.BoardDisplay, bool) { return s.snapshot, s.hasSnapshot }

// Generation is the generation of the cached snapshot.
func (s *Session) Generation() uint64 { return s.snapshot.Generation() }

// View is the requested display area.
func (s *Session) View() core.Area { return s.view }

// Running reports whether the simulation was last told to run.
func (s *Session) Running() bool { return s.running }

// Speed is the last requested tick rate.
func (s *Session) Speed() comms.Speed { return s.speed }

// CanUndo reports whether an edit can be undone.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether an undone edit can be redone.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// CellAt returns the cached state of pos.
func (s *Session) CellAt(pos core.GlobalPosition) core.Cell { return s.snapshot.At(pos) }

// Toggle flips pos as seen in the cached snapshot.
func (s *Session) Toggle(pos core.GlobalPosition) {
	s.Paint(pos, s.CellAt(pos).Invert())
}

// Paint sets pos to cell and records the edit. Repeating the previous paint
// is ignored so dragging over one cell records it once.
func (s *Session) Paint(pos core.GlobalPosition, cell core.Cell) {
	if s.fatal != nil {
		return
	}
	a := history.ActionFor(pos, cell)
	if s.lastPaint != nil && *s.lastPaint == a {
		return
	}
	s.history.Add(a)
	s.lastPaint = &a
	s.send(comms.Set{Position: pos, Cell: cell})
}

// Undo reverts the newest edit.
func (s *Session) Undo() {
	if s.fatal != nil {
		return
	}
	s.lastPaint = nil
	for _, p := range s.history.Undo() {
		s.send(p)
	}
}

// Redo re-applies the most recently undone edit.
func (s *Session) Redo() {
	if s.fatal != nil {
		return
	}
	s.lastPaint = nil
	for _, p := range s.history.Redo() {
		s.send(p)
	}
}

// Start runs the simulation.
func (s *Session) Start() {
	s.running = true
	s.until = nil
	s.send(comms.Start{})
}

// StartUntil runs the simulation until generation is reached.
func (s *Session) StartUntil(generation uint64) {
	s.running = true
	s.until = &generation
	s.send(comms.StartUntil{Generation: generation})
}

// Stop pauses the simulation.
func (s *Session) Stop() {
	s.running = false
	s.until = nil
	s.send(comms.Stop{})
}

// SetSpeed changes the tick rate.
func (s *Session) SetSpeed(speed comms.Speed) {
	s.speed = speed
	s.send(comms.SimulationSpeed{Speed: speed})
}

// Pan moves the view by delta cells.
func (s *Session) Pan(delta core.GlobalPosition) {
	if delta == (core.GlobalPosition{}) {
		return
	}
	s.view.Translate(delta)
	s.send(comms.DisplayArea{Area: s.view})
}

// Resize keeps the view's min corner and changes its size in cells.
func (s *Session) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	origin := s.view.Min()
	view := core.NewArea(origin, origin.Add(core.Pos(width-1, height-1)))
	if view == s.view {
		return
	}
	s.view = view
	s.send(comms.DisplayArea{Area: s.view})
}

// RequestSave asks the simulation for its board and writes it once it
// arrives.
func (s *Session) RequestSave(meta Meta) {
	if s.fatal != nil {
		return
	}
	meta.Tags = slices.Clone(meta.Tags)
	s.pendingSaves = append(s.pendingSaves, meta)
	s.send(comms.SaveBoard{})
}

// RequestBlueprint asks the simulation for the cells in area and writes them
// as a blueprint.
func (s *Session) RequestBlueprint(area core.Area, meta Meta) {
	if s.fatal != nil {
		return
	}
	meta.Tags = slices.Clone(meta.Tags)
	s.pendingBlueprints = append(s.pendingBlueprints, meta)
	s.send(comms.SaveBlueprint{Area: area})
}

// LoadBoard replaces the board with the save at path once it has been read.
// The edit history is cleared.
func (s *Session) LoadBoard(path string) {
	if s.fatal != nil || s.boardLoad != nil {
		return
	}
	s.boardLoad = s.store.LoadBoard(path)
}

// PlaceBlueprint stamps the blueprint at path with its first cell at origin.
func (s *Session) PlaceBlueprint(path string, origin core.GlobalPosition) {
	if s.fatal != nil {
		return
	}
	s.blueprintLoads = append(s.blueprintLoads, blueprintLoad{origin: origin, future: s.store.LoadBlueprint(path)})
}

// RefreshPreviews rescans both directories. A scan already in flight is kept.
func (s *Session) RefreshPreviews() {
	if s.fatal != nil {
		return
	}
	if s.savePreviewScan == nil {
		s.savePreviewScan = s.store.SavePreviews()
	}
	if s.blueprintPreviewScan == nil {
		s.blueprintPreviewScan = s.store.BlueprintPreviews()
	}
}

// Previews returns the last scanned board saves.
func (s *Session) Previews() []persistence.PreviewResult[persistence.SavePreview] {
	return s.savePreviews
}

// BlueprintPreviews returns the last scanned blueprints.
func (s *Session) BlueprintPreviews() []persistence.PreviewResult[persistence.BlueprintPreview] {
	return s.blueprintPreviews
}

// DeleteFiles removes paths and rescans afterwards.
func (s *Session) DeleteFiles(paths []string) {
	if s.fatal != nil || s.deletes != nil || len(paths) == 0 {
		return
	}
	s.deletes = s.store.Delete(paths)
}

// Busy reports whether any background work is still outstanding.
func (s *Session) Busy() bool {
	return len(s.pendingSaves)+len(s.pendingBlueprints)+len(s.writes)+len(s.blueprintLoads) > 0 ||
		s.boardLoad != nil || s.deletes != nil || s.savePreviewScan != nil || s.blueprintPreviewScan != nil
}

// Close terminates the simulation and releases the link.
func (s *Session) Close() {
	if s.fatal == nil {
		_ = s.ui.Send.Send(comms.Terminate{})
	}
	s.ui.Close()
}

// StatusLine summarises the session for the HUD.
func (s *Session) StatusLine() string {
	state := "stopped"
	if s.running {
		state = "running"
		if s.until != nil {
			state = fmt.Sprintf("running to %d", *s.until)
		}
	}
	return fmt.Sprintf("gen %d  %s  %s", s.Generation(), state, s.speed)
}
