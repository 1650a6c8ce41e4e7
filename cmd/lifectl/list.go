package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gernest/wow"
	"github.com/gernest/wow/spin"

	"infinite-life/internal/app"
	"infinite-life/internal/iopool"
	"infinite-life/internal/storage"
	"infinite-life/pkg/persistence"
)

func listCmd(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	blueprints := fs.Bool("blueprints", false, "list blueprints instead of saves")
	cfg := app.NewConfig()
	if err := cfg.Parse(fs, args); err != nil {
		return err
	}

	pool := iopool.New()
	defer pool.Close()
	store := storage.New(pool, cfg.SaveDir, cfg.BlueprintDir)

	w := wow.New(os.Stderr, spin.Get(spin.Dots), " scanning")
	w.Start()
	var rows []string
	var err error
	if *blueprints {
		rows, err = waitRows(store.BlueprintPreviews(), blueprintRow)
	} else {
		rows, err = waitRows(store.SavePreviews(), saveRow)
	}
	w.Stop()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintln(tw, r)
	}
	return tw.Flush()
}

func waitRows[T any](f *iopool.Future[[]persistence.PreviewResult[T]], row func(T) string) ([]string, error) {
	r, err := f.Wait(context.Background())
	if err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}
	rows := make([]string, 0, len(r.Value))
	for _, p := range r.Value {
		if p.Err != nil {
			rows = append(rows, fmt.Sprintf("err\t%s\t%v", p.Path, p.Err))
			continue
		}
		rows = append(rows, fmt.Sprintf("ok\t%s\t%s", p.Path, row(p.Preview)))
	}
	return rows, nil
}

func saveRow(p persistence.SavePreview) string {
	return fmt.Sprintf("%s\tgen %d\t%v\t%s", p.Name, p.Generation, p.BoardArea, p.Time.Time().Format("2006-01-02 15:04"))
}

func blueprintRow(p persistence.BlueprintPreview) string {
	return fmt.Sprintf("%s\t%dx%d\t%s", p.Name, uint64(p.XSize)+1, uint64(p.YSize)+1, p.Time.Time().Format("2006-01-02 15:04"))
}
