package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/bkrems/prep/internal/cmd"
	"github.com/bkrems/prep/internal/git"
	"github.com/bkrems/prep/internal/log"
	"github.com/bkrems/prep/internal/output"
	"github.com/bkrems/prep/internal/proc"
	"github.com/bkrems/prep/internal/step"
	"github.com/bkrems/prep/internal/ui/prompt"
)

// hookGuard reports whether the process was started by a git hook.
// Package variable so tests can trip the guard without faking a
// process tree.
var hookGuard = proc.InvokedFromGitHook

type squashOptions struct {
	mainArg     string // positional main-branch override
	message     string // commit message, empty prompts or opens the editor
	push        bool   // force-push the result at the end
	yes         bool   // run without per-step review
	dryRun      bool   // display the pipeline without executing
	copySubject bool   // copy the squashed commit subject to the clipboard
}

// runSquash rewrites the current feature branch into a single commit on
// top of main. The work happens on a reserved temp branch; the feature
// branch is only touched after the squashed result is verified to have
// identical content.
func runSquash(ctx context.Context, dir string, opts squashOptions) error {
	logger := log.FromContext(ctx)
	out := output.FromContext(ctx)

	// Refuse to run from inside a git hook. A pre-push hook that calls
	// the push-flavored binary would recurse through force-push; exiting
	// zero keeps the triggering git command working.
	if hookGuard() {
		logger.Printf("prep: invoked from a git hook, doing nothing\n")
		return nil
	}

	if !git.IsInsideRepo(ctx, dir) {
		return fmt.Errorf("not inside a git repository")
	}
	if !git.HasRemote(ctx, dir, "origin") {
		return fmt.Errorf("no 'origin' remote configured")
	}

	override := opts.mainArg
	if override == "" {
		override = cfg.MainBranch
	}
	mainBranch, err := git.DetectMainBranch(ctx, dir, override)
	if err != nil {
		return err
	}

	branch, err := git.CurrentBranch(ctx, dir)
	if err != nil {
		return err
	}
	tempBranch := cfg.TempBranch

	if branch == mainBranch {
		return fmt.Errorf("already on %q; check out the feature branch first", mainBranch)
	}
	if branch == tempBranch {
		return fmt.Errorf("currently on the temp branch %q; check out the feature branch first", tempBranch)
	}
	if git.BranchExists(ctx, dir, tempBranch) {
		return fmt.Errorf("temp branch %q already exists, likely left over from an aborted run; inspect it and delete it with 'git branch -D %s'", tempBranch, tempBranch)
	}

	clean, err := git.IsClean(ctx, dir)
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("branch %s is not clean, commit or stash your changes first", branch)
	}

	equal, err := git.BranchesEqual(ctx, dir, branch, mainBranch)
	if err != nil {
		return err
	}
	if equal {
		out.Success(fmt.Sprintf("branch %s has the same content as %s, nothing to squash", branch, mainBranch))
		return nil
	}

	interactive := !opts.yes && !opts.dryRun &&
		isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())

	var review step.ReviewFunc
	if interactive {
		review = func(header, command string) (string, bool) {
			res, err := prompt.Edit(header, command)
			if err != nil {
				logger.Printf("prompt failed: %v\n", err)
				return "", false
			}
			if res.Skipped {
				return "", false
			}
			return res.Command, true
		}
	}

	runner := step.NewRunner(out.Writer(), review, func(ctx context.Context, command string) error {
		return cmd.ShellContext(ctx, dir, command)
	})

	base := step.Defaults()
	if opts.yes || opts.dryRun {
		base.Confirm = false
	}
	if opts.dryRun {
		base.Execute = false
	}

	type pipelineStep struct {
		header  string
		command string
		opts    step.Options
	}

	commitCmd := "git commit"
	message := opts.message
	if message == "" && interactive {
		res, err := prompt.Message("Commit message for the squashed commit (empty opens the editor)", "feat: ...")
		if err != nil {
			return err
		}
		if res.Cancelled {
			return fmt.Errorf("cancelled")
		}
		message = res.Value
	}
	if strings.TrimSpace(message) != "" {
		commitCmd = "git commit -m " + shellQuote(message)
	}

	verifyOpts := base
	verifyOpts.Confirm = false
	verifyOpts.AbortOnError = false

	steps := []pipelineStep{
		{
			header:  fmt.Sprintf("update %s from origin", mainBranch),
			command: fmt.Sprintf("git checkout %s && git pull --no-edit origin %s", mainBranch, mainBranch),
			opts:    base,
		},
		{
			header:  fmt.Sprintf("merge %s into %s", mainBranch, branch),
			command: fmt.Sprintf("git checkout %s && git pull --no-edit origin %s", branch, mainBranch),
			opts:    base.AsSub(),
		},
		{
			header:  fmt.Sprintf("create temp branch %s from %s", tempBranch, mainBranch),
			command: fmt.Sprintf("git checkout -b %s %s", tempBranch, mainBranch),
			opts:    base,
		},
		{
			header:  fmt.Sprintf("squash %s onto %s", branch, tempBranch),
			command: fmt.Sprintf("git merge --squash %s", branch),
			opts:    base,
		},
		{
			header:  "commit the squashed changes",
			command: commitCmd,
			opts:    base,
		},
		{
			header:  fmt.Sprintf("verify %s matches %s", tempBranch, branch),
			command: fmt.Sprintf("git diff --quiet %s %s", tempBranch, branch),
			opts:    verifyOpts,
		},
		{
			header:  fmt.Sprintf("point %s at the squashed commit", branch),
			command: fmt.Sprintf("git checkout %s && git reset --hard %s", branch, tempBranch),
			opts:    base,
		},
		{
			header:  fmt.Sprintf("delete temp branch %s", tempBranch),
			command: fmt.Sprintf("git branch -D %s", tempBranch),
			opts:    base,
		},
	}
	if opts.push {
		steps = append(steps, pipelineStep{
			header:  fmt.Sprintf("force-push %s to origin", branch),
			command: fmt.Sprintf("git push --force --set-upstream origin %s", branch),
			opts:    base,
		})
	}

	verifyIndex := 5
	for i, s := range steps {
		status, err := runner.Run(ctx, s.header, s.command, s.opts)
		if err != nil {
			return err
		}
		// The verify step downgrades its own failure so we can attach a
		// precise diagnostic instead of a generic abort.
		if i == verifyIndex && status != 0 {
			return fmt.Errorf("squashed result on %s does not match %s; both branches are left untouched for inspection", tempBranch, branch)
		}
	}

	if opts.dryRun {
		out.Printf("\n")
		out.Muted("dry run, no commands were executed")
		return nil
	}

	return summarize(ctx, dir, mainBranch, branch, opts)
}

// summarize prints the result of a completed pipeline. Run after the
// temp branch is gone, so all refs are in their final state.
func summarize(ctx context.Context, dir, mainBranch, branch string, opts squashOptions) error {
	logger := log.FromContext(ctx)
	out := output.FromContext(ctx)

	ahead, err := git.CommitsAhead(ctx, dir, mainBranch, branch)
	if err != nil {
		return err
	}
	subject, err := git.Subject(ctx, dir, branch)
	if err != nil {
		return err
	}

	noun := "commits"
	if ahead == 1 {
		noun = "commit"
	}
	out.Printf("\n")
	out.Success(fmt.Sprintf("branch %s squashed to %d %s on top of %s: %s", branch, ahead, noun, mainBranch, subject))
	if !opts.push {
		out.Muted(fmt.Sprintf("push with: git push --force --set-upstream origin %s", branch))
	}

	if opts.copySubject {
		if err := clipboard.WriteAll(subject); err != nil {
			logger.Printf("Warning: failed to copy commit subject: %v\n", err)
		} else {
			logger.Printf("Copied commit subject to clipboard\n")
		}
	}
	return nil
}

// shellQuote wraps s in single quotes for safe use in an `sh -c` string.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
