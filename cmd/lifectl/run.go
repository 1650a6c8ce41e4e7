package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"

	"infinite-life/internal/app"
	"infinite-life/pkg/comms"
	"infinite-life/pkg/core"
	"infinite-life/pkg/persistence"
	"infinite-life/pkg/sim"
)

const pollInterval = 20 * time.Millisecond

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	load := fs.String("load", "", "save file to start from, otherwise the seeded board")
	until := fs.Uint64("until", 100, "generation to stop at")
	name := fs.String("name", "", "name of the resulting save")
	description := fs.String("description", "", "description of the resulting save")
	tags := fs.String("tags", "", "comma separated tags")
	cfg := app.NewConfig()
	cfg.TPS = 0
	if err := cfg.Parse(fs, args); err != nil {
		return err
	}

	display := sim.NewSharedDisplay()
	engine, err := cfg.NewEngine(display)
	if err != nil {
		return err
	}
	ui, simEnd := comms.NewLink()
	handle := comms.Run(engine, simEnd.Recv, simEnd.Send, comms.WithIdleSleep(pollInterval))

	save, err := simulate(ui, display, *load, *until, cfg.Speed())
	ui.Close()
	if werr := handle.Wait(); werr != nil && !errors.Is(werr, comms.ErrUIDisconnected) {
		return werr
	}
	if err != nil {
		return err
	}

	path, err := persistence.NewSave(save).
		Name(*name).
		Description(*description).
		Tags(splitTags(*tags)...).
		Save(cfg.SaveDir)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// simulate drives the loop to the target generation and returns the board.
func simulate(ui comms.UIEnd, display *sim.SharedDisplay, load string, until uint64, speed comms.Speed) (sim.SimulationSave, error) {
	if load != "" {
		save, err := persistence.LoadBoard(load)
		if err != nil {
			return sim.SimulationSave{}, err
		}
		if err := ui.Send.Send(comms.LoadBoard{Save: save}); err != nil {
			return sim.SimulationSave{}, err
		}
	}
	// A one cell view keeps snapshots cheap. Sending it marks the display
	// stale so the loop publishes even when no tick is needed.
	if err := sendAll(ui,
		comms.DisplayArea{Area: core.NewArea(core.Pos(0, 0), core.Pos(0, 0))},
		comms.SimulationSpeed{Speed: speed},
		comms.StartUntil{Generation: until},
	); err != nil {
		return sim.SimulationSave{}, err
	}

	bar := pb.Full.Start64(int64(until))
	defer bar.Finish()
	for {
		d, ok, err := display.Take()
		if err != nil {
			return sim.SimulationSave{}, err
		}
		if ok {
			bar.SetCurrent(int64(min(d.Generation(), until)))
			if d.Generation() >= until {
				break
			}
		}
		if _, err := ui.Recv.TryRecv(); errors.Is(err, comms.ErrDisconnected) {
			return sim.SimulationSave{}, err
		}
		time.Sleep(pollInterval)
	}

	if err := ui.Send.Send(comms.SaveBoard{}); err != nil {
		return sim.SimulationSave{}, err
	}
	for {
		p, err := ui.Recv.TryRecv()
		switch {
		case errors.Is(err, comms.ErrEmpty):
			time.Sleep(pollInterval)
			continue
		case err != nil:
			return sim.SimulationSave{}, err
		}
		if reply, ok := p.(comms.BoardSave); ok {
			_ = ui.Send.Send(comms.Terminate{})
			return reply.Save, nil
		}
	}
}

func sendAll(ui comms.UIEnd, packets ...comms.UIPacket) error {
	for _, p := range packets {
		if err := ui.Send.Send(p); err != nil {
			return fmt.Errorf("send %T: %w", p, err)
		}
	}
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
