// Package step provides the interactive step executor driving prep's
// squash pipeline. Each step is one shell command with a human header
// and a set of per-step options controlling interactivity: the operator
// can inspect, edit, or skip the command before anything destructive
// happens.
package step

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bkrems/prep/internal/cmd"
	"github.com/bkrems/prep/internal/ui/styles"
)

// ErrAborted marks a step failure that terminates the whole pipeline.
var ErrAborted = errors.New("pipeline aborted")

// Options control how a single step is displayed and executed.
// The zero value disables everything; use Defaults for the common case.
type Options struct {
	Confirm      bool // present the command for review/edit before running
	Header       bool // print the step banner
	Advance      bool // increment the step counter
	Echo         bool // print the command text before running
	Execute      bool // actually run the command (false = display only)
	AbortOnError bool // non-zero exit terminates the pipeline
}

// Defaults returns the options with every behavior enabled.
func Defaults() Options {
	return Options{
		Confirm:      true,
		Header:       true,
		Advance:      true,
		Echo:         true,
		Execute:      true,
		AbortOnError: true,
	}
}

// AsSub returns o adjusted for a sub-step of the current conceptual
// step: the counter is frozen so the banner keeps the same number.
func (o Options) AsSub() Options {
	o.Advance = false
	return o
}

// ReviewFunc receives the proposed command and returns the command to
// actually run. Returning ok=false skips the step. The interactive
// implementation is prompt.Edit; Passthrough is the non-interactive
// default; tests supply scripted implementations.
type ReviewFunc func(header, command string) (edited string, ok bool)

// Passthrough returns the proposed command unchanged.
func Passthrough(_, command string) (string, bool) {
	return command, true
}

// ExecFunc runs one shell command.
type ExecFunc func(ctx context.Context, command string) error

// Runner executes pipeline steps and keeps the display counter.
type Runner struct {
	review ReviewFunc
	exec   ExecFunc
	out    io.Writer
	count  int
}

// NewRunner creates a Runner writing banners and diagnostics to out.
// A nil review runs commands unmodified; a nil exec runs them through
// `sh -c` with the operator's terminal attached.
func NewRunner(out io.Writer, review ReviewFunc, exec ExecFunc) *Runner {
	if out == nil {
		out = os.Stderr
	}
	if review == nil {
		review = Passthrough
	}
	if exec == nil {
		exec = func(ctx context.Context, command string) error {
			return cmd.ShellContext(ctx, "", command)
		}
	}
	return &Runner{review: review, exec: exec, out: out}
}

// Count returns the current step number.
func (r *Runner) Count() int {
	return r.count
}

// Run executes one step. It returns the command's exit status and an
// error only when the step is fatal: AbortOnError with a non-zero
// status (wrapping ErrAborted), a cancelled context, or a failed
// prompt. Skipped and display-only steps report status 0.
func (r *Runner) Run(ctx context.Context, header, command string, opts Options) (int, error) {
	if opts.Advance {
		r.count++
	}
	if opts.Header {
		if opts.Advance {
			fmt.Fprintf(r.out, "\n%s\n", styles.BannerStyle.Render(fmt.Sprintf("Step %d: %s", r.count, header)))
		} else {
			fmt.Fprintf(r.out, "%s\n", styles.BannerStyle.Render(header))
		}
	}

	if opts.Confirm {
		edited, ok := r.review(header, command)
		if !ok {
			fmt.Fprintf(r.out, "%s\n", styles.MutedStyle.Render("skipped"))
			return 0, nil
		}
		command = edited
		if strings.TrimSpace(command) == "" {
			fmt.Fprintf(r.out, "%s\n", styles.MutedStyle.Render("skipped (empty command)"))
			return 0, nil
		}
	}

	if opts.Echo {
		fmt.Fprintf(r.out, "%s\n", styles.MutedStyle.Render("$ "+command))
	}

	if !opts.Execute {
		return 0, nil
	}

	err := r.exec(ctx, command)
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return cmd.ExitStatus(err), ctxErr
	}

	status := cmd.ExitStatus(err)
	fmt.Fprintf(r.out, "%s\n", styles.ErrorStyle.Render(
		fmt.Sprintf("command failed (exit %d): %s", status, command)))
	if opts.AbortOnError {
		return status, fmt.Errorf("step %q failed with status %d: %w", header, status, ErrAborted)
	}
	return status, nil
}
