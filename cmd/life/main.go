//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"infinite-life/internal/app"
	"infinite-life/internal/iopool"
	"infinite-life/internal/storage"
	"infinite-life/pkg/comms"
	"infinite-life/pkg/sim"
	_ "infinite-life/pkg/sims/sparse"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	log.SetPrefix("life: ")
	cfg := app.NewConfig()
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	display := sim.NewSharedDisplay()
	engine, err := cfg.NewEngine(display)
	if err != nil {
		log.Fatal(err)
	}

	ui, simEnd := comms.NewLink()
	handle := comms.Run(engine, simEnd.Recv, simEnd.Send)

	pool := iopool.New()
	defer pool.Close()
	store := storage.New(pool, cfg.SaveDir, cfg.BlueprintDir)

	session := app.NewSession(ui, display, store, cfg.InitialView())
	session.SetSpeed(cfg.Speed())

	tps, _ := cfg.Speed().TicksPerSecond()
	game := app.New(session, cfg.Scale, max(tps, 1))

	ebiten.SetWindowTitle("infinite-life (" + cfg.Engine + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	session.Close()
	if err := handle.Wait(); err != nil {
		log.Printf("simulation: %v", err)
	}
}
