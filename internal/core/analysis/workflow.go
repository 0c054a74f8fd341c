// Package analysis runs the crop analysis demo: a single-flight request
// that moves Idle -> Analyzing -> Completed and can be started again once
// finished.
package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neilberkman/farmedge/internal/core/models"
)

// ErrClosed is returned by Run for jobs of a closed workflow.
var ErrClosed = errors.New("analysis workflow closed")

// Job is a ticket for one accepted trigger.
type Job struct {
	ID        string
	StartedAt time.Time
}

// Result is the outcome of running a Job.
type Result struct {
	Job    Job
	Report models.Report
	Err    error
}

// Workflow owns the analysis state. Trigger and Complete are meant to be
// called from the UI event loop; Run may block and belongs in a background
// task.
//
// A completion is applied only if it belongs to the current job and the
// workflow is still open, so a result that arrives after Close is dropped.
type Workflow struct {
	analyzer Analyzer
	logger   *zap.Logger
	crop     string

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  models.AnalysisState
	job    Job
	report *models.Report
	err    error
	closed bool
}

// NewWorkflow creates an idle workflow.
func NewWorkflow(analyzer Analyzer, crop string, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Workflow{
		analyzer: analyzer,
		logger:   logger,
		crop:     crop,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Trigger starts a new analysis. It returns false without side effects while
// one is already running or after Close.
func (w *Workflow) Trigger() (Job, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.state == models.AnalysisRunning {
		return Job{}, false
	}

	w.job = Job{ID: uuid.NewString(), StartedAt: time.Now()}
	w.state = models.AnalysisRunning
	w.report = nil
	w.err = nil

	w.logger.Info("analysis started", zap.String("job", w.job.ID))
	return w.job, true
}

// Run executes job against the analyzer. It returns early with ErrClosed
// (or the context error) if the workflow is closed meanwhile.
func (w *Workflow) Run(job Job) Result {
	if w.ctx.Err() != nil {
		return Result{Job: job, Err: ErrClosed}
	}

	report, err := w.analyzer.Analyze(w.ctx, Request{JobID: job.ID, Crop: w.crop})
	if err != nil && w.ctx.Err() != nil {
		err = ErrClosed
	}
	return Result{Job: job, Report: report, Err: err}
}

// Complete applies res. It reports false when res is stale: the workflow was
// closed, or res is not for the running job.
func (w *Workflow) Complete(res Result) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.state != models.AnalysisRunning || res.Job.ID != w.job.ID {
		w.logger.Debug("discarding stale analysis result", zap.String("job", res.Job.ID))
		return false
	}

	if res.Err != nil {
		// Degrade to idle; the view shows the error as a soft notice.
		w.state = models.AnalysisIdle
		w.err = res.Err
		w.logger.Warn("analysis failed", zap.String("job", res.Job.ID), zap.Error(res.Err))
		return true
	}

	report := res.Report
	w.report = &report
	w.state = models.AnalysisCompleted
	w.logger.Info("analysis completed",
		zap.String("job", res.Job.ID),
		zap.Duration("elapsed", time.Since(res.Job.StartedAt)))
	return true
}

// Close cancels any pending run and makes every later completion a no-op.
// Safe to call more than once.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	w.cancel()
}

// State returns the current phase.
func (w *Workflow) State() models.AnalysisState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Job returns the most recently accepted job.
func (w *Workflow) Job() Job {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.job
}

// Report returns the completed report, or nil unless Completed.
func (w *Workflow) Report() *models.Report {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != models.AnalysisCompleted {
		return nil
	}
	return w.report
}

// Err returns the failure of the last run, if any.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
