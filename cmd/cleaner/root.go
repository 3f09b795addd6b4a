package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"MarketSweep/internal/cleaning"
	"MarketSweep/internal/config"
	"MarketSweep/internal/recorder"
	"MarketSweep/internal/table"
)

type cleanOptions struct {
	configPath string
	name       string
	outDir     string
	sqlitePath string
	pause      time.Duration
}

// NewRootCommand returns the cleaner command: clean <file>.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &cleanOptions{}
	rc := &cobra.Command{
		Use:   "cleaner <file.csv|file.xlsx>",
		Short: "Deduplicate and impute a tabular file, writing a cleaned CSV.",
		Long: `Loads a .csv or .xlsx file, removes exact duplicate rows (saved to
<name>_duplicates.csv when any exist), fills missing numeric cells with the
column mean, drops rows missing a text value, and writes <name>_clean_data.csv.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, opts, args[0], stdout)
		},
	}
	flags := rc.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", defaultConfigPath(), "Configuration file to read from.")
	flags.StringVarP(&opts.name, "name", "n", "", "Dataset name used for output files (default: input file name)")
	flags.StringVarP(&opts.outDir, "out", "o", "", "Output directory (default: output.dir from config)")
	flags.StringVar(&opts.sqlitePath, "sqlite", "", "SQLite file for run history (default: database.sqlite_path from config)")
	flags.DurationVar(&opts.pause, "pause", 0, "Delay between stages while narrating progress")

	rc.SetIn(stdin)
	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func runClean(cmd *cobra.Command, opts *cleanOptions, path string, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fail(cmd, err)
	}
	outDir := opts.outDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	sqlitePath := opts.sqlitePath
	if sqlitePath == "" {
		sqlitePath = cfg.Database.SQLitePath
	}
	name := opts.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	// Nothing is created for an input that cannot be loaded.
	if _, err := table.Resolve(path); err != nil {
		return fail(cmd, err)
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if sqlitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(sqlitePath)
		if err != nil {
			color.New(color.FgYellow).Fprintf(stdout, "run history disabled: %v\n", err)
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fail(cmd, fmt.Errorf("create output dir: %w", err))
	}

	p := cleaning.NewPipeline(outDir, rec)
	p.Pause = opts.pause
	p.OnState = narrator(stdout)

	if _, err := p.Run(cmd.Context(), path, name); err != nil {
		return fail(cmd, err)
	}
	return nil
}

func fail(cmd *cobra.Command, err error) error {
	color.New(color.FgRed, color.Bold).Fprintf(cmd.ErrOrStderr(), "cleaning failed: %v\n", err)
	return err
}

// narrator prints operator-facing progress for each pipeline state.
func narrator(w io.Writer) func(cleaning.State, *cleaning.Report) {
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	head := color.New(color.FgCyan, color.Bold)

	return func(s cleaning.State, r *cleaning.Report) {
		switch s {
		case cleaning.StateLoaded:
			head.Fprintf(w, "Loaded %s (%s)\n", r.InputPath, r.Format)
			fmt.Fprintf(w, "  rows: %d, columns: %d\n", r.InputRows, r.InputCols)
			fmt.Fprintln(w, "  missing values per column:")
			for _, m := range r.Missing {
				fmt.Fprintf(w, "    %-24s %d\n", m.Column, m.Count)
			}
			fmt.Fprintf(w, "  total missing values: %d\n", r.TotalMissing)
		case cleaning.StateDeduplicated:
			if r.Duplicates == 0 {
				ok.Fprintln(w, "No duplicate rows found")
				return
			}
			warn.Fprintf(w, "Removed %d duplicate rows, saved to %s\n", r.Duplicates, r.DuplicatesPath)
		case cleaning.StateImputed:
			if r.TotalMissing == 0 {
				ok.Fprintln(w, "No missing values, imputation skipped")
			} else {
				ok.Fprintf(w, "Missing values handled: %d rows, %d columns remain\n", r.OutputRows, r.OutputCols)
			}
			for _, wn := range r.Warnings {
				warn.Fprintf(w, "warning: %v\n", wn)
			}
		case cleaning.StateDone:
			ok.Fprintf(w, "Clean data saved to %s\n", r.CleanPath)
		case cleaning.StateFailed:
			color.New(color.FgRed).Fprintf(w, "Stopped after %s\n", r.InputPath)
		}
	}
}
