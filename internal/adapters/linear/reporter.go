// Package linear provides a synchronous, line-oriented reporter for
// dependency check results.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/libload/internal/ui/output"
	"go.trai.ch/libload/internal/ui/style"
)

// Reporter implements ports.Reporter. Progress goes to stderr, the final
// summary to stdout.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu sync.Mutex
}

// NewReporter creates a new Reporter.
func NewReporter(stdout, stderr io.Writer) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Reporter{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, colorProfile),
	}
}

// colorProfile uses plain ANSI colors unless NO_COLOR is set.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// OnSkipped reports a malformed declaration.
func (r *Reporter) OnSkipped(skipped domain.Skipped) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := r.output.String(style.Warning).Foreground(termenv.ANSIYellow).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Skipped: %v\n", r.prefix(skipped.Declaration), symbol, skipped.Err)
}

// OnStart reports that a coordinate is being resolved.
func (r *Reporter) OnStart(coord domain.Coordinate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "%s Resolving...\n", r.prefix(coord.String()))
}

// OnOutcome reports the terminal state of a coordinate.
func (r *Reporter) OnOutcome(outcome domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.prefix(outcome.Coordinate.String())

	switch {
	case !outcome.OK():
		// The cause is logged by the coordinator.
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed during %s\n", prefix, symbol, outcome.Stage)
	case outcome.CacheHit:
		symbol := r.output.String(style.Tilde).Foreground(termenv.ANSIBlue).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Activated %s from cache\n", prefix, symbol, outcome.Name)
	default:
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Activated %s (%d bytes downloaded)\n",
			prefix, symbol, outcome.Name, outcome.BytesFetched)
	}
}

// OnComplete prints the summary line.
func (r *Reporter) OnComplete(report domain.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.Native {
		_, _ = fmt.Fprintln(r.stdout, "Host loads libraries natively, nothing to resolve.")
		return
	}

	activated, failed := report.Counts()
	total := activated + failed

	line := fmt.Sprintf("Activated %d of %d %s", activated, total, plural(total, "library", "libraries"))
	if failed > 0 {
		line += fmt.Sprintf(", %d failed", failed)
	}
	if n := len(report.Skipped); n > 0 {
		line += fmt.Sprintf(", %d skipped", n)
	}
	_, _ = fmt.Fprintln(r.stdout, line+".")
}

func (r *Reporter) prefix(name string) string {
	return r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Ensure Reporter satisfies the interface.
var _ ports.Reporter = (*Reporter)(nil)
