package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minicodemonkey/chime/internal/generate"
)

const progressBarWidth = 30

// RunState represents the state of a generation run.
type RunState int

const (
	StateRunning RunState = iota
	StateComplete
	StateStopped
	StateError
)

func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "Generating"
	case StateComplete:
		return "Complete"
	case StateStopped:
		return "Stopped"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// JobEventMsg wraps a runner event for the Bubble Tea model.
type JobEventMsg struct {
	Event generate.Event
}

// RunFinishedMsg is sent when the runner returns.
type RunFinishedMsg struct {
	Summary *generate.Summary
	Err     error
}

// eventsClosedMsg is sent once the event channel is drained.
type eventsClosedMsg struct{}

// RunFunc starts a generation run. It must close the event channel passed to
// NewApp before returning.
type RunFunc func(ctx context.Context) (*generate.Summary, error)

type jobStatus int

const (
	jobPending jobStatus = iota
	jobRunning
	jobWritten
	jobFailed
)

type jobRow struct {
	job    generate.Job
	status jobStatus
	path   string
	err    error
}

// App is the Bubble Tea model that tracks a generation run.
type App struct {
	rows      []jobRow
	events    <-chan generate.Event
	run       RunFunc
	ctx       context.Context
	cancel    context.CancelFunc
	state     RunState
	startTime time.Time
	width     int

	finished bool
	drained  bool
	summary  *generate.Summary
	err      error
}

// NewApp creates the progress view for jobs. events must carry the runner's
// OnEvent stream.
func NewApp(jobs []generate.Job, events <-chan generate.Event, run RunFunc) *App {
	ctx, cancel := context.WithCancel(context.Background())
	rows := make([]jobRow, len(jobs))
	for i, j := range jobs {
		rows[i] = jobRow{job: j}
	}
	return &App{
		rows:      rows,
		events:    events,
		run:       run,
		ctx:       ctx,
		cancel:    cancel,
		state:     StateRunning,
		startTime: time.Now(),
		width:     80,
	}
}

// Init starts the run and begins listening for events.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.runGenerate(), a.listenForEvents())
}

func (a *App) runGenerate() tea.Cmd {
	return func() tea.Msg {
		summary, err := a.run(a.ctx)
		return RunFinishedMsg{Summary: summary, Err: err}
	}
}

func (a *App) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-a.events
		if !ok {
			return eventsClosedMsg{}
		}
		return JobEventMsg{Event: event}
	}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			a.cancel()
			if a.state == StateRunning {
				a.state = StateStopped
			}
			return a, tea.Quit
		}
		return a, nil

	case JobEventMsg:
		a.handleJobEvent(msg.Event)
		return a, a.listenForEvents()

	case eventsClosedMsg:
		a.drained = true
		return a, a.quitIfDone()

	case RunFinishedMsg:
		a.finished = true
		a.summary = msg.Summary
		a.err = msg.Err
		switch {
		case msg.Err == nil:
			a.state = StateComplete
		case errors.Is(msg.Err, context.Canceled):
			a.state = StateStopped
		default:
			a.state = StateError
		}
		return a, a.quitIfDone()
	}

	return a, nil
}

func (a *App) quitIfDone() tea.Cmd {
	if a.finished && a.drained {
		a.cancel()
		return tea.Quit
	}
	return nil
}

func (a *App) handleJobEvent(e generate.Event) {
	if e.Index < 0 || e.Index >= len(a.rows) {
		return
	}
	row := &a.rows[e.Index]
	switch e.Type {
	case generate.EventStarted:
		row.status = jobRunning
	case generate.EventWritten:
		row.status = jobWritten
		row.path = e.Path
	case generate.EventFailed:
		row.status = jobFailed
		row.err = e.Err
	}
}

// State returns the current run state.
func (a *App) State() RunState {
	return a.state
}

// Err returns the runner's error once the run has finished.
func (a *App) Err() error {
	return a.err
}

// Summary returns the runner's summary once the run has finished.
func (a *App) Summary() *generate.Summary {
	return a.summary
}

// Written returns the number of jobs reported as written so far.
func (a *App) Written() int {
	n := 0
	for _, r := range a.rows {
		if r.status == jobWritten {
			n++
		}
	}
	return n
}

// View renders the progress view.
func (a *App) View() string {
	var b strings.Builder

	header := headerStyle.Render("chime") + " " + GetStateStyle(a.state).Render(a.state.String())
	b.WriteString(header + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat("─", max(a.width-2, 10))) + "\n")

	written := a.Written()
	fmt.Fprintf(&b, " %s %d/%d\n\n", a.renderProgressBar(written, len(a.rows)), written, len(a.rows))

	for _, r := range a.rows {
		b.WriteString(" " + renderRow(r) + "\n")
	}

	b.WriteString("\n")
	if a.finished {
		b.WriteString(footerStyle.Render(a.renderResult()) + "\n")
	} else {
		elapsed := time.Since(a.startTime).Round(time.Millisecond)
		b.WriteString(footerStyle.Render(fmt.Sprintf("%s elapsed · q to cancel", elapsed)) + "\n")
	}
	return b.String()
}

func (a *App) renderResult() string {
	switch a.state {
	case StateComplete:
		samples := 0
		if a.summary != nil {
			samples = a.summary.Samples
		}
		return fmt.Sprintf("Wrote %d files (%d samples)", a.Written(), samples)
	case StateStopped:
		return "Cancelled"
	default:
		return fmt.Sprintf("Error: %v", a.err)
	}
}

func renderRow(r jobRow) string {
	name := labelStyle.Render(fmt.Sprintf("%-24s", r.job.String()))
	switch r.status {
	case jobRunning:
		return statusRunningStyle.Render(IconRunning) + " " + name
	case jobWritten:
		return statusWrittenStyle.Render(IconWritten) + " " + name + " " + pathStyle.Render(r.path)
	case jobFailed:
		msg := "failed"
		if r.err != nil {
			msg = r.err.Error()
		}
		return statusFailedStyle.Render(IconFailed) + " " + name + " " + statusFailedStyle.Render(msg)
	default:
		return statusPendingStyle.Render(IconPending) + " " + name
	}
}

// renderProgressBar draws done/total as a fixed-width bar.
func (a *App) renderProgressBar(done, total int) string {
	filledWidth := 0
	if total > 0 {
		filledWidth = done * progressBarWidth / total
	}
	emptyWidth := progressBarWidth - filledWidth
	return progressBarFillStyle.Render(strings.Repeat("█", filledWidth)) +
		progressBarEmptyStyle.Render(strings.Repeat("░", emptyWidth))
}
