package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calc/internal/logging"
)

type jobKind string

type jobStatus string

const (
	jobKindCalculate jobKind = "calculate"
	jobKindCopy      jobKind = "copy"
	jobKindPaste     jobKind = "paste"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	logger  *slog.Logger
	timeout time.Duration
}

func newJobBus(logger *slog.Logger, timeout time.Duration) *jobBus {
	if logger == nil {
		logger = logging.Discard()
	}
	if timeout <= 0 {
		timeout = defaultEvalTimeout
	}
	return &jobBus{logger: logger, timeout: timeout}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start announces the job, runs it off the update loop and delivers its
// payload wrapped in a jobResultEnvelope.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(logging.WithLogger(context.Background(), b.logger), b.timeout)
		defer cancel()
		payload, err := runner(ctx)
		snapshot := b.finish(id, kind, started, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

func (b *jobBus) finish(id string, kind jobKind, started time.Time, err error) jobSnapshot {
	snapshot := jobSnapshot{
		ID:          id,
		Kind:        kind,
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
	if err != nil {
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
	} else {
		snapshot.Status = jobStatusSucceeded
	}
	snapshot.Duration = snapshot.CompletedAt.Sub(started)
	logging.LogOperation(b.logger, "job finished",
		slog.String("id", id),
		slog.String("kind", string(kind)),
		slog.String("status", string(snapshot.Status)),
		slog.Duration("duration", snapshot.Duration),
		slog.String("error", snapshot.Err),
	)
	return snapshot
}
