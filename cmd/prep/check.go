package main

import (
	"context"
	"fmt"

	"github.com/bkrems/prep/internal/git"
	"github.com/bkrems/prep/internal/output"
)

// syncCheck is one of the ordered conditions a feature branch must meet
// before it is ready to squash. The checks run in order and the first
// failure wins; later checks are meaningless until earlier ones pass.
type syncCheck struct {
	pass string
	fail string
	run  func(ctx context.Context) (bool, error)
}

// runCheck verifies that the current branch is fully synchronized:
// clean tree, pushed, up to date with the remote main, and up to date
// with the local main. mainArg overrides branch detection; empty means
// use the config override or detect.
func runCheck(ctx context.Context, dir, mainArg string) error {
	out := output.FromContext(ctx)

	if !git.IsInsideRepo(ctx, dir) {
		return fmt.Errorf("not inside a git repository")
	}
	if !git.HasRemote(ctx, dir, "origin") {
		return fmt.Errorf("no 'origin' remote configured")
	}

	override := mainArg
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
	if branch == mainBranch {
		return fmt.Errorf("already on %q; check out the feature branch first", mainBranch)
	}

	checks := []syncCheck{
		{
			pass: "working tree is clean",
			fail: fmt.Sprintf("branch %s is not clean, you need to commit or stash your changes", branch),
			run: func(ctx context.Context) (bool, error) {
				return git.IsClean(ctx, dir)
			},
		},
		{
			pass: fmt.Sprintf("%s matches origin/%s", branch, branch),
			fail: fmt.Sprintf("branch %s differs from origin/%s, you need to push", branch, branch),
			run: func(ctx context.Context) (bool, error) {
				if !git.HasRemoteBranch(ctx, dir, branch) {
					return false, nil
				}
				return git.BranchesEqual(ctx, dir, branch, "origin/"+branch)
			},
		},
		{
			pass: fmt.Sprintf("%s matches origin/%s", branch, mainBranch),
			fail: fmt.Sprintf("branch %s differs from origin/%s, you need to merge the remote %s", branch, mainBranch, mainBranch),
			run: func(ctx context.Context) (bool, error) {
				return git.BranchesEqual(ctx, dir, branch, "origin/"+mainBranch)
			},
		},
		{
			pass: fmt.Sprintf("%s matches %s", branch, mainBranch),
			fail: fmt.Sprintf("branch %s differs from local %s, you need to pull %s", branch, mainBranch, mainBranch),
			run: func(ctx context.Context) (bool, error) {
				return git.BranchesEqual(ctx, dir, branch, mainBranch)
			},
		},
	}

	for i, c := range checks {
		ok, err := c.run(ctx)
		if err != nil {
			return err
		}
		if !ok {
			out.Fail(c.fail)
			return fmt.Errorf("check %d of %d failed", i+1, len(checks))
		}
		out.Pass(c.pass)
	}

	out.Success(fmt.Sprintf("branch %s is in sync with %s", branch, mainBranch))
	return nil
}
