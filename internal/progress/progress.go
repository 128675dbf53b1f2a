// Package progress renders a live sweep progress view with Bubble Tea while
// the sweep runs on a background goroutine.
package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/ollamasweep/internal/sweep"
)

// startedMsg is sent once the sweep knows how many combinations it has.
type startedMsg struct{ total int }

// runningMsg is sent when a benchmark process is launched.
type runningMsg struct {
	index int
	argv  []string
}

// savedMsg is sent after a row is flushed.
type savedMsg struct{ index int }

// doneMsg is sent when the sweep function returns.
type doneMsg struct{ err error }

// finishedMsg carries the results path once every row is written.
type finishedMsg struct{ outputFile string }

// printMsg is a line to print above the live view.
type printMsg string

// model is the Bubble Tea model for the progress view.
type model struct {
	spinner  spinner.Model
	bar      progress.Model
	total    int
	saved    int
	current  string
	output   string
	done     bool
	err      error
	canceled bool
	cancel   context.CancelFunc
}

func newModel(cancel context.CancelFunc) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		cancel:  cancel,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.canceled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if w := msg.Width - 4; w > 0 && w < 80 {
			m.bar.Width = w
		}
	case startedMsg:
		m.total = msg.total
	case runningMsg:
		m.current = strings.Join(msg.argv, " ")
	case savedMsg:
		m.saved++
	case finishedMsg:
		m.output = msg.outputFile
	case printMsg:
		return m, tea.Println(string(msg))
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		if bar, ok := pm.(progress.Model); ok {
			m.bar = bar
		}
		return m, cmd
	}
	return m, nil
}

func (m model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.saved) / float64(m.total)
}

func (m model) View() string {
	faint := lipgloss.NewStyle().Faint(true)
	if m.done {
		if m.err == nil && m.output != "" {
			return fmt.Sprintf("Benchmarking complete. Results saved to %s\n", m.output)
		}
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/%d runs saved\n", m.spinner.View(), m.saved, m.total)
	b.WriteString(m.bar.ViewAs(m.percent()))
	b.WriteString("\n")
	if m.current != "" {
		b.WriteString(faint.Render(m.current))
		b.WriteString("\n")
	}
	b.WriteString(faint.Render("(q to stop)"))
	b.WriteString("\n")
	return b.String()
}

// Observer forwards sweep events to a running Bubble Tea program and prints
// the raw benchmark streams above the live view.
type Observer struct {
	program *tea.Program
}

// println goes through Send so it never blocks once the program has exited.
func (o *Observer) println(s string) {
	o.program.Send(printMsg(s))
}

func (o *Observer) SweepStarted(total int) {
	o.program.Send(startedMsg{total: total})
}

func (o *Observer) RunStarted(index, total int, argv []string) {
	o.println("Running benchmark: " + strings.Join(argv, " "))
	o.program.Send(runningMsg{index: index, argv: argv})
}

func (o *Observer) RunFinished(index int, res sweep.Result) {
	o.println("Raw output:\n" + res.Stdout)
	o.println("Raw error:\n" + res.Stderr)
	if res.ExitCode != 0 {
		o.println(fmt.Sprintf("Benchmark exited with status %d", res.ExitCode))
	}
}

func (o *Observer) RowSaved(index int, message string) {
	o.println(message)
	o.program.Send(savedMsg{index: index})
}

func (o *Observer) SweepFinished(outputFile string) {
	o.program.Send(finishedMsg{outputFile: outputFile})
}

// Run starts the progress view and calls fn with an Observer bound to it.
// fn runs on its own goroutine; the view closes when fn returns. Quitting the
// view cancels the context handed to fn.
func Run(ctx context.Context, fn func(ctx context.Context, obs sweep.Observer) error, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(cancel), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	obs := &Observer{program: p}

	errc := make(chan error, 1)
	go func() {
		err := fn(ctx, obs)
		errc <- err
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		cancel()
		<-errc
		return fmt.Errorf("progress view: %w", err)
	}
	cancel()
	return <-errc
}
