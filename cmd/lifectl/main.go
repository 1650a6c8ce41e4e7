// Command lifectl runs and manages boards without a window.
package main

import (
	"fmt"
	"log"
	"os"

	_ "infinite-life/pkg/sims/sparse"
)

const usage = `usage: lifectl <command> [flags]

commands:
  run        simulate a board up to a generation and save it
  list       list saves or blueprints
  delete     delete save files
  blueprint  cut a blueprint out of a save
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("lifectl: ")
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "run":
		err = runCmd(args)
	case "list":
		err = listCmd(args)
	case "delete":
		err = deleteCmd(args)
	case "blueprint":
		err = blueprintCmd(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}
