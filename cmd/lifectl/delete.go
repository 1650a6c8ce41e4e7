package main

import (
	"errors"
	"flag"
	"fmt"

	"infinite-life/pkg/persistence"
)

func deleteCmd(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("delete: no files given")
	}
	failed := 0
	for _, r := range persistence.Delete(fs.Args()) {
		if r.Err != nil {
			fmt.Printf("err\t%v\n", r.Err)
			failed++
			continue
		}
		fmt.Printf("ok\t%s\n", r.Path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d deletions failed", failed, fs.NArg())
	}
	return nil
}
