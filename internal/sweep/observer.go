// internal/sweep/observer.go
package sweep

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Observer receives sweep progress. Runners call it synchronously from the
// sweep loop, in order.
type Observer interface {
	SweepStarted(total int)
	RunStarted(index, total int, argv []string)
	RunFinished(index int, res Result)
	RowSaved(index int, message string)
	SweepFinished(outputFile string)
}

// ConsoleObserver prints sweep progress as plain lines, colored when out is a
// terminal.
type ConsoleObserver struct {
	out          io.Writer
	commandStyle lipgloss.Style
	labelStyle   lipgloss.Style
	savedStyle   lipgloss.Style
	failStyle    lipgloss.Style
}

// NewConsoleObserver returns a ConsoleObserver writing to out.
func NewConsoleObserver(out io.Writer) *ConsoleObserver {
	r := lipgloss.NewRenderer(out)
	return &ConsoleObserver{
		out:          out,
		commandStyle: r.NewStyle().Foreground(lipgloss.Color("86")),
		labelStyle:   r.NewStyle().Foreground(lipgloss.Color("244")),
		savedStyle:   r.NewStyle().Foreground(lipgloss.Color("46")),
		failStyle:    r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (o *ConsoleObserver) SweepStarted(total int) {}

func (o *ConsoleObserver) RunStarted(index, total int, argv []string) {
	fmt.Fprintln(o.out, o.commandStyle.Render("Running benchmark: "+strings.Join(argv, " ")))
}

func (o *ConsoleObserver) RunFinished(index int, res Result) {
	fmt.Fprintf(o.out, "%s\n%s\n", o.labelStyle.Render("Raw output:"), res.Stdout)
	fmt.Fprintf(o.out, "%s\n%s\n", o.labelStyle.Render("Raw error:"), res.Stderr)
	if res.ExitCode != 0 {
		fmt.Fprintln(o.out, o.failStyle.Render(fmt.Sprintf("Benchmark exited with status %d", res.ExitCode)))
	}
}

func (o *ConsoleObserver) RowSaved(index int, message string) {
	fmt.Fprintln(o.out, o.savedStyle.Render(message))
	fmt.Fprintln(o.out)
}

func (o *ConsoleObserver) SweepFinished(outputFile string) {
	fmt.Fprintf(o.out, "Benchmarking complete. Results saved to %s\n", outputFile)
}

type nopObserver struct{}

func (nopObserver) SweepStarted(int) {}
func (nopObserver) RunStarted(int, int, []string) {}
func (nopObserver) RunFinished(int, Result) {}
func (nopObserver) RowSaved(int, string) {}
func (nopObserver) SweepFinished(string) {}
