package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"MarketSweep/internal/collector"
	"MarketSweep/internal/model"
	"MarketSweep/internal/recorder"
	"MarketSweep/internal/report"
)

// ReportNotifier delivers the daily report.
type ReportNotifier interface {
	SendDailyReport(ctx context.Context, h model.Highlights, csvPath string) error
}

// Scheduler runs the daily fetch, summarize, export and notify sequence.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Exporter  *report.Exporter
	Notifier  ReportNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	running sync.Mutex // held for the duration of one report run
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, exp *report.Exporter, n ReportNotifier, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	logger := cron.PrintfLogger(log.Default())
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
		Collector: col,
		Exporter:  exp,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterDaily registers the report task under a seconds-resolution cron spec.
func (s *Scheduler) RegisterDaily(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish,
// including one started by RunNow.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.running.Lock()
	s.running.Unlock()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the report task immediately (for manual trigger / RUN_ON_START).
// It returns nil without running when another run is in progress.
func (s *Scheduler) RunNow() *recorder.ReportRun {
	if !s.running.TryLock() {
		log.Println("[WARN] report already running, skipped")
		return nil
	}
	defer s.running.Unlock()
	return s.runReport()
}

func (s *Scheduler) dailyTask() {
	s.RunNow()
}

func (s *Scheduler) runReport() *recorder.ReportRun {
	run := &recorder.ReportRun{RunID: uuid.NewString()}
	log.Printf("[INFO] running daily report %s", run.RunID)

	snap, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] daily collect: %v", err)
		return s.finish(run, model.StatusFetchFailed, err)
	}

	summary, err := report.Summarize(snap)
	if err != nil {
		log.Printf("[ERROR] summarize: %v", err)
		return s.finish(run, model.StatusExportFailed, err)
	}
	run.Highlights = &summary.Highlights

	path, err := s.Exporter.Export(summary)
	if err != nil {
		log.Printf("[ERROR] export: %v", err)
		return s.finish(run, model.StatusExportFailed, err)
	}
	run.CSVPath = path

	if err := s.Notifier.SendDailyReport(s.Ctx, summary.Highlights, path); err != nil {
		log.Printf("[ERROR] send report: %v", err)
		return s.finish(run, model.StatusSendFailed, err)
	}
	return s.finish(run, model.StatusSent, nil)
}

func (s *Scheduler) finish(run *recorder.ReportRun, status model.RunStatus, err error) *recorder.ReportRun {
	run.Status = status
	if err != nil {
		run.Error = err.Error()
	}
	if recErr := s.Recorder.RecordReport(run); recErr != nil {
		log.Printf("[ERROR] record report: %v", recErr)
	}
	return run
}
