package cleaning

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"MarketSweep/internal/model"
	"MarketSweep/internal/recorder"
	"MarketSweep/internal/table"
)

// State is a step of the cleaning pipeline.
type State int

const (
	StateStart State = iota
	StateLoaded
	StateDeduplicated
	StateImputed
	StateWritten
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateLoaded:
		return "LOADED"
	case StateDeduplicated:
		return "DEDUPLICATED"
	case StateImputed:
		return "IMPUTED"
	case StateWritten:
		return "WRITTEN"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ColumnMissing is the missing-cell count of one input column.
type ColumnMissing struct {
	Column string
	Count  int
}

// Report summarizes one pipeline run.
type Report struct {
	RunID          string
	InputPath      string
	Format         table.Format
	InputRows      int
	InputCols      int
	Duplicates     int
	Missing        []ColumnMissing
	TotalMissing   int
	OutputRows     int
	OutputCols     int
	DuplicatesPath string
	CleanPath      string
	Warnings       []*model.DataQualityWarning
	State          State
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Pipeline runs load, deduplicate, impute and write in sequence.
type Pipeline struct {
	OutputDir string
	Recorder  recorder.Recorder
	// Pause is an optional delay between stages for console narration.
	Pause time.Duration
	// OnState, if set, is called after every state transition.
	OnState func(State, *Report)
}

// NewPipeline creates a Pipeline writing into outputDir.
func NewPipeline(outputDir string, rec recorder.Recorder) *Pipeline {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Pipeline{OutputDir: outputDir, Recorder: rec}
}

// DuplicatesFile returns the duplicate report path for a dataset name.
func (p *Pipeline) DuplicatesFile(name string) string {
	return filepath.Join(p.OutputDir, name+"_duplicates.csv")
}

// CleanFile returns the cleaned output path for a dataset name.
func (p *Pipeline) CleanFile(name string) string {
	return filepath.Join(p.OutputDir, name+"_clean_data.csv")
}

// Run cleans the file at path and writes <name>_clean_data.csv, plus
// <name>_duplicates.csv when duplicates exist. The first failing stage
// stops the run; the returned report then has State == StateFailed.
func (p *Pipeline) Run(ctx context.Context, path, name string) (*Report, error) {
	rep := &Report{
		RunID:     uuid.NewString(),
		InputPath: path,
		State:     StateStart,
		StartedAt: time.Now(),
	}
	err := p.run(ctx, rep, path, name)
	rep.FinishedAt = time.Now()
	if err != nil {
		p.transition(rep, StateFailed)
	}
	p.record(rep, err)
	return rep, err
}

func (p *Pipeline) run(ctx context.Context, rep *Report, path, name string) error {
	if name == "" {
		return &model.ConfigurationError{Op: "clean", Err: fmt.Errorf("dataset name is required")}
	}

	data, format, err := table.Load(path)
	if err != nil {
		return err
	}
	rep.Format = format
	rep.InputRows, rep.InputCols = data.NumRows(), data.NumCols()
	for i, n := range data.MissingCounts() {
		rep.Missing = append(rep.Missing, ColumnMissing{Column: data.Columns[i].Name, Count: n})
		rep.TotalMissing += n
	}
	p.transition(rep, StateLoaded)
	if err := p.pause(ctx); err != nil {
		return err
	}

	deduped, dups := Deduplicate(data)
	rep.Duplicates = dups.NumRows()
	log.Printf("[INFO] dataset has %d duplicate rows", rep.Duplicates)
	if rep.Duplicates > 0 {
		dupPath := p.DuplicatesFile(name)
		if err := table.WriteCSV(dupPath, dups); err != nil {
			return fmt.Errorf("write duplicates: %w", err)
		}
		rep.DuplicatesPath = dupPath
	}
	p.transition(rep, StateDeduplicated)
	if err := p.pause(ctx); err != nil {
		return err
	}

	clean := deduped
	if rep.TotalMissing > 0 {
		var warnings []*model.DataQualityWarning
		clean, warnings = Impute(deduped)
		for _, w := range warnings {
			log.Printf("[WARN] %v", w)
		}
		rep.Warnings = warnings
	}
	rep.OutputRows, rep.OutputCols = clean.NumRows(), clean.NumCols()
	p.transition(rep, StateImputed)
	if err := p.pause(ctx); err != nil {
		return err
	}

	cleanPath := p.CleanFile(name)
	if err := table.WriteCSV(cleanPath, clean); err != nil {
		return fmt.Errorf("write clean data: %w", err)
	}
	rep.CleanPath = cleanPath
	p.transition(rep, StateWritten)

	p.transition(rep, StateDone)
	return nil
}

func (p *Pipeline) transition(rep *Report, s State) {
	rep.State = s
	if p.OnState != nil {
		p.OnState(s, rep)
	}
}

func (p *Pipeline) pause(ctx context.Context) error {
	if p.Pause <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.Pause):
		return nil
	}
}

func (p *Pipeline) record(rep *Report, runErr error) {
	run := &recorder.CleaningRun{
		RunID:        rep.RunID,
		InputPath:    rep.InputPath,
		Format:       rep.Format.String(),
		InputRows:    rep.InputRows,
		OutputRows:   rep.OutputRows,
		Columns:      rep.InputCols,
		Duplicates:   rep.Duplicates,
		TotalMissing: rep.TotalMissing,
		Warnings:     len(rep.Warnings),
		State:        rep.State.String(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := p.Recorder.RecordCleaning(run); err != nil {
		log.Printf("[ERROR] record cleaning run: %v", err)
	}
}
