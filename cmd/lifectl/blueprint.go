package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"infinite-life/internal/app"
	"infinite-life/pkg/core"
	"infinite-life/pkg/persistence"
	"infinite-life/pkg/sim"
)

func blueprintCmd(args []string) error {
	fs := flag.NewFlagSet("blueprint", flag.ExitOnError)
	load := fs.String("load", "", "save file to cut from")
	areaFlag := fs.String("area", "", "x1,y1,x2,y2 corners, defaults to the whole board")
	name := fs.String("name", "", "name of the blueprint")
	cfg := app.NewConfig()
	if err := cfg.Parse(fs, args); err != nil {
		return err
	}
	if *load == "" {
		return fmt.Errorf("blueprint: -load is required")
	}

	save, err := persistence.LoadBoard(*load)
	if err != nil {
		return err
	}
	engine, err := cfg.NewEngine(nil)
	if err != nil {
		return err
	}
	sim.LoadBoard(engine, save)

	area := engine.BoardArea()
	if *areaFlag != "" {
		if area, err = parseArea(*areaFlag); err != nil {
			return err
		}
	}
	path, err := persistence.NewBlueprint(sim.SaveBlueprint(engine, area)).Name(*name).Save(cfg.BlueprintDir)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func parseArea(s string) (core.Area, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return core.Area{}, fmt.Errorf("area %q: want x1,y1,x2,y2", s)
	}
	var v [4]int32
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return core.Area{}, fmt.Errorf("area %q: %w", s, err)
		}
		v[i] = int32(n)
	}
	return core.NewArea(core.Pos(v[0], v[1]), core.Pos(v[2], v[3])), nil
}
