package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/lox/sueca/internal/history"
)

// HistoryCmd is the root command for round records
type HistoryCmd struct {
	Show HistoryShowCmd `cmd:"" help:"Render a recorded round"`
	List HistoryListCmd `cmd:"" help:"List the rounds recorded in a directory"`
}

// HistoryShowCmd renders a record and replays it to check its result
type HistoryShowCmd struct {
	File   string `arg:"" name:"file" help:"Path to a round .toml file"`
	Verify bool   `default:"true" negatable:"" help:"Replay the round and check the recorded result"`
}

func (cmd *HistoryShowCmd) Run() error {
	return cmd.run(os.Stdout)
}

func (cmd *HistoryShowCmd) run(out io.Writer) error {
	if cmd.File == "" {
		return errors.New("history show requires a file path")
	}

	rec, err := history.Load(cmd.File)
	if err != nil {
		return err
	}
	if err := history.Render(out, rec); err != nil {
		return err
	}

	if cmd.Verify {
		outcome, err := history.Replay(rec)
		if err != nil {
			return fmt.Errorf("record failed verification: %w", err)
		}
		fmt.Fprintf(out, "Verified: %s\n", outcome)
	}
	return nil
}

// HistoryListCmd summarises every record in a directory
type HistoryListCmd struct {
	Dir string `arg:"" optional:"" default:"rounds" help:"Directory holding round records"`
}

func (cmd *HistoryListCmd) Run() error {
	return cmd.run(os.Stdout)
}

func (cmd *HistoryListCmd) run(out io.Writer) error {
	paths, err := filepath.Glob(filepath.Join(cmd.Dir, "*.toml"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no round records in %s", cmd.Dir)
	}

	var records []*history.Record
	for _, path := range paths {
		rec, err := history.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Time.Before(records[j].Time) })

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROUND\tPLAYED\tTRUMP\tSCORE\tRESULT")
	for _, rec := range records {
		score := "-"
		if len(rec.Scores) == 2 {
			score = fmt.Sprintf("%d-%d", rec.Scores[0], rec.Scores[1])
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.Round, rec.Time.Format("2006-01-02 15:04"), rec.TrumpCard, score, rec.Result)
	}
	return w.Flush()
}
