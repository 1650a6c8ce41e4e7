//go:build ebiten

package app

import (
	"image"
	"log"
	"slices"
	"time"

	"infinite-life/internal/render"
	"infinite-life/internal/ui"
	"infinite-life/pkg/comms"
	"infinite-life/pkg/core"
	"infinite-life/pkg/persistence"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const noticeLifetime = 4 * time.Second

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale int
	tps   uint32

	notice      string
	noticeUntil time.Time

	paintCell core.Cell
	selecting bool
	selStart  core.GlobalPosition
}

// New constructs a Game driving session.
func New(session *Session, scale int, tps uint32) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		session: session,
		painter: render.NewGridPainter(render.DefaultPalette),
		hud:     ui.NewHUD(260),
		overlay: ui.NewOverlay(),
		scale:   scale,
		tps:     tps,
	}
	session.RefreshPreviews()
	return g
}

// Update handles per-frame input and polls the session.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.session.Close()
		return ebiten.Termination
	}

	g.session.Frame()
	for _, n := range g.session.Notices() {
		log.Printf("%s", n)
		g.notice = n
		g.noticeUntil = time.Now().Add(noticeLifetime)
	}
	if g.session.Fatal() != nil {
		return nil
	}

	g.handleRunKeys()
	g.handleEditKeys()
	g.handleFileKeys()
	g.handleMouse()
	return nil
}

func (g *Game) handleRunKeys() {
	s := g.session
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if s.Running() {
			s.Stop()
		} else {
			s.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !s.Running() {
		s.StartUntil(s.Generation() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.tps = min(max(g.tps*2, 1), 1<<16)
		s.SetSpeed(comms.NewSpeed(g.tps))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.tps = max(g.tps/2, 1)
		s.SetSpeed(comms.NewSpeed(g.tps))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) {
		s.SetSpeed(comms.Uncapped)
	}

	step := int32(1)
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 10
	}
	var pan core.GlobalPosition
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		pan.X -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		pan.X += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		pan.Y -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || (ebiten.IsKeyPressed(ebiten.KeyS) && !ctrl()) {
		pan.Y += step
	}
	s.Pan(pan)
}

func ctrl() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *Game) handleEditKeys() {
	if !ctrl() {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.session.Undo()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyY) {
		g.session.Redo()
	}
}

func (g *Game) handleFileKeys() {
	s := g.session
	if ctrl() && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.RequestSave(Meta{Name: "quick save", Description: time.Now().Format(time.DateTime)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.RefreshPreviews()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if p, ok := newestSave(s.Previews()); ok {
			s.LoadBoard(p.Path)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		if p, ok := newestBlueprint(s.BlueprintPreviews()); ok {
			s.PlaceBlueprint(p.Path, g.cursorCell())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		if p, ok := newestSave(s.Previews()); ok {
			s.DeleteFiles([]string{p.Path})
		}
	}
}

func (g *Game) handleMouse() {
	pos := g.cursorCell()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.paintCell = g.session.CellAt(pos).Invert()
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.session.Paint(pos, g.paintCell)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.selecting = true
		g.selStart = pos
	}
	if g.selecting {
		g.overlay.SetSelection(g.screenRect(core.NewArea(g.selStart, pos)))
	}
	if g.selecting && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		g.selecting = false
		g.overlay.ClearSelection()
		g.session.RequestBlueprint(core.NewArea(g.selStart, pos), Meta{Name: "selection"})
	}
}

func (g *Game) cursorCell() core.GlobalPosition {
	mx, my := ebiten.CursorPosition()
	return g.session.View().Min().Add(core.Pos(int32(mx/g.scale), int32(my/g.scale)))
}

func (g *Game) screenRect(a core.Area) image.Rectangle {
	origin := g.session.View().Min()
	lo := a.Min().Sub(origin)
	hi := a.Max().Sub(origin)
	return image.Rect(int(lo.X)*g.scale, int(lo.Y)*g.scale, int(hi.X+1)*g.scale, int(hi.Y+1)*g.scale)
}

// Draw renders the latest snapshot with the HUD and overlay on top.
func (g *Game) Draw(screen *ebiten.Image) {
	if d, ok := g.session.Snapshot(); ok {
		g.painter.Upload(d)
	}
	g.painter.Blit(screen, g.scale)
	g.overlay.Draw(screen)

	status := ui.Status{
		Line:    g.session.StatusLine(),
		CanUndo: g.session.CanUndo(),
		CanRedo: g.session.CanRedo(),
		Fatal:   g.session.Fatal(),
	}
	if time.Now().Before(g.noticeUntil) {
		status.Notice = g.notice
	}
	g.hud.Update(status)
	g.hud.Draw(screen)
}

// Layout resizes the view to the window and returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.session.Resize(int32(outsideWidth/g.scale), int32(outsideHeight/g.scale))
	return outsideWidth, outsideHeight
}

func newestSave(ps []persistence.PreviewResult[persistence.SavePreview]) (persistence.PreviewResult[persistence.SavePreview], bool) {
	ok := slices.DeleteFunc(slices.Clone(ps), func(p persistence.PreviewResult[persistence.SavePreview]) bool { return p.Err != nil })
	if len(ok) == 0 {
		return persistence.PreviewResult[persistence.SavePreview]{}, false
	}
	return slices.MaxFunc(ok, func(a, b persistence.PreviewResult[persistence.SavePreview]) int {
		return a.Preview.Time.Time().Compare(b.Preview.Time.Time())
	}), true
}

func newestBlueprint(ps []persistence.PreviewResult[persistence.BlueprintPreview]) (persistence.PreviewResult[persistence.BlueprintPreview], bool) {
	ok := slices.DeleteFunc(slices.Clone(ps), func(p persistence.PreviewResult[persistence.BlueprintPreview]) bool { return p.Err != nil })
	if len(ok) == 0 {
		return persistence.PreviewResult[persistence.BlueprintPreview]{}, false
	}
	return slices.MaxFunc(ok, func(a, b persistence.PreviewResult[persistence.BlueprintPreview]) int {
		return a.Preview.Time.Time().Compare(b.Preview.Time.Time())
	}), true
}
