package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/crinis/mindfula11y-sub001/internal/classify"
	"github.com/crinis/mindfula11y-sub001/internal/fetch"
	"github.com/crinis/mindfula11y-sub001/internal/model"
	"github.com/crinis/mindfula11y-sub001/internal/rules"
	"github.com/crinis/mindfula11y-sub001/internal/structure"
)

// State is the lifecycle state of an analysis task.
type State int

const (
	// StateIdle means no run has been issued yet.
	StateIdle State = iota

	// StateRunning means a fetch-classify-build-detect cycle is in flight.
	StateRunning

	// StateComplete means the latest run published a result.
	StateComplete

	// StateFailed means the latest run could not fetch or parse the markup.
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is a re-entrant, cancellable unit of analysis work bound to one
// document reference. A new run request while a previous run is still in
// flight simply produces a second, independent run; only the completion
// carrying the highest run token is ever published.
//
// Design decision: The first-run flag lives on the task instance rather
// than in package state so it is scoped to one engine instance and cannot
// leak across unrelated concurrent tasks in the same process.
type Task struct {
	// source provides the document markup.
	source fetch.Source

	// detector runs the violation rules.
	detector *rules.Detector

	// logger is used for structured logging during runs.
	logger *slog.Logger

	// mu guards the published state below.
	mu sync.Mutex

	// state is the task's lifecycle state.
	state State

	// documentURL is the reference of the most recently requested document.
	documentURL string

	// nextToken is the token handed to the next run. Monotonically
	// increasing; never reset.
	nextToken uint64

	// publishedToken is the token of the run whose result is currently
	// published. Completions with a lower token are discarded as stale.
	publishedToken uint64

	// announcedOnce becomes true after the first completed run. The first
	// run's result suppresses the assertive announcement marker so opening
	// a document does not generate noise for assistive technology.
	announcedOnce bool

	// result is the most recently published result.
	result *model.AnalysisResult
}

// TaskOption configures a Task.
type TaskOption func(*Task)

// WithLogger sets a custom logger for the task.
func WithLogger(logger *slog.Logger) TaskOption {
	return func(t *Task) {
		t.logger = logger
	}
}

// WithDetector sets a custom rule detector.
func WithDetector(detector *rules.Detector) TaskOption {
	return func(t *Task) {
		t.detector = detector
	}
}

// NewTask creates a Task that fetches markup from source.
func NewTask(source fetch.Source, opts ...TaskOption) *Task {
	t := &Task{
		source: source,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.detector == nil {
		t.detector = rules.NewDetector()
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Run executes one full analysis cycle against documentURL and returns the
// run's result. On fetch failure the task transitions to failed and the
// returned result is empty (fail-open to "nothing detected") alongside the
// error. A result is only published as the task's current result if no
// newer run completed in the meantime.
func (t *Task) Run(ctx context.Context, documentURL string) (*model.AnalysisResult, error) {
	token := t.begin(documentURL)

	t.logger.Debug("analysis run started",
		"document", documentURL,
		"token", token,
	)

	markup, err := t.source.Fetch(ctx, documentURL)
	if err != nil {
		result := model.EmptyAnalysisResult(t.completeRun(token, StateFailed))
		t.logger.Warn("analysis run failed",
			"document", documentURL,
			"token", token,
			"error", err,
		)
		return result, err
	}

	result, err := t.analyze(markup)
	if err != nil {
		empty := model.EmptyAnalysisResult(t.completeRun(token, StateFailed))
		t.logger.Warn("analysis run failed",
			"document", documentURL,
			"token", token,
			"error", err,
		)
		return empty, err
	}

	result.Announce = t.completeRun(token, StateComplete)
	t.publish(token, result)

	t.logger.Debug("analysis run complete",
		"document", documentURL,
		"token", token,
		"diagnostics", len(result.Diagnostics),
	)

	return result, nil
}

// Rescan re-runs the analysis against the task's current document
// reference. The edit collaborator calls this after a heading-level or
// landmark-role change has been persisted.
func (t *Task) Rescan(ctx context.Context) (*model.AnalysisResult, error) {
	t.mu.Lock()
	documentURL := t.documentURL
	t.mu.Unlock()

	if documentURL == "" {
		return nil, fmt.Errorf("rescan requested before any run was issued")
	}
	return t.Run(ctx, documentURL)
}

// State returns the task's current lifecycle state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Result returns the most recently published result, or nil if no run has
// completed successfully yet.
func (t *Task) Result() *model.AnalysisResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// begin transitions the task to running and issues a fresh run token.
func (t *Task) begin(documentURL string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextToken++
	t.state = StateRunning
	t.documentURL = documentURL
	return t.nextToken
}

// completeRun records the terminal state of a run if it is still the newest
// one and returns whether the run's diagnostics should be announced
// assertively. The first completed run of an instance is never announced.
func (t *Task) completeRun(token uint64, terminal State) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	announce := t.announcedOnce
	t.announcedOnce = true

	if token >= t.publishedToken {
		t.publishedToken = token
		t.state = terminal
	}
	return announce
}

// publish stores the run's result unless a newer run has published already.
func (t *Task) publish(token uint64, result *model.AnalysisResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if token < t.publishedToken {
		// A newer run finished first; this completion is stale.
		return
	}
	t.result = result
}

// analyze performs the synchronous, CPU-bound part of the run: parse,
// classify, build both trees, and detect violations.
func (t *Task) analyze(markup string) (*model.AnalysisResult, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	classifier := classify.New(doc)
	headings, landmarks := classifier.Collect(doc, t.logger)

	in := &rules.Input{
		Headings:  structure.BuildHeadingTree(headings),
		Landmarks: structure.BuildLandmarkTree(landmarks),
	}
	diagnostics := t.detector.Detect(in)

	return &model.AnalysisResult{
		Headings:    in.Headings,
		Landmarks:   in.Landmarks,
		Diagnostics: diagnostics,
	}, nil
}
