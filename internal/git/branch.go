package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoMainBranch indicates that no main-branch candidate exists locally.
var ErrNoMainBranch = fmt.Errorf("cannot detect main branch")

// CurrentBranch returns the checked-out branch name.
// Detached HEAD is an error: prep always operates on a named branch.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %v", err)
	}
	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "", fmt.Errorf("HEAD is detached; check out a branch first")
	}
	return branch, nil
}

// BranchExists checks if a local branch exists.
func BranchExists(ctx context.Context, dir, branch string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch) == nil
}

// HasRemoteBranch checks if origin has a branch with the given name.
func HasRemoteBranch(ctx context.Context, dir, branch string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/remotes/origin/"+branch) == nil
}

// IsClean reports whether the working tree has no uncommitted differences
// from HEAD, staged or unstaged. Untracked files do not count.
func IsClean(ctx context.Context, dir string) (bool, error) {
	err := runGit(ctx, dir, "diff", "--quiet", "HEAD", "--")
	if err == nil {
		return true, nil
	}
	// diff --quiet exits 1 when differences exist; anything else is a
	// real failure (not a repo, unborn HEAD).
	out, statErr := outputGit(ctx, dir, "status", "--porcelain", "--untracked-files=no")
	if statErr != nil {
		return false, fmt.Errorf("failed to check working tree: %v", statErr)
	}
	return strings.TrimSpace(string(out)) == "", nil
}

// DetectMainBranch returns the first of [override, master, main] that
// exists as a local branch. An empty override is skipped. Returns
// ErrNoMainBranch when no candidate exists; an empty branch name is
// never propagated.
func DetectMainBranch(ctx context.Context, dir, override string) (string, error) {
	candidates := []string{override, "master", "main"}
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if BranchExists(ctx, dir, name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: none of %q exist locally", ErrNoMainBranch, nonEmpty(candidates))
}

func nonEmpty(names []string) []string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// BranchesEqual reports whether two refs have byte-identical tracked
// content. History may differ; content must not.
func BranchesEqual(ctx context.Context, dir, a, b string) (bool, error) {
	if err := runGit(ctx, dir, "diff", "--quiet", a, b, "--"); err == nil {
		return true, nil
	}
	// Distinguish "refs differ" from "ref doesn't resolve".
	for _, ref := range []string{a, b} {
		if err := runGit(ctx, dir, "rev-parse", "--verify", "--quiet", ref+"^{commit}"); err != nil {
			return false, fmt.Errorf("cannot resolve %q: %v", ref, err)
		}
	}
	return false, nil
}

// CommitsAhead returns the number of commits on branch not reachable
// from base.
func CommitsAhead(ctx context.Context, dir, base, branch string) (int, error) {
	out, err := outputGit(ctx, dir, "rev-list", "--count", base+".."+branch)
	if err != nil {
		return 0, fmt.Errorf("failed to count commits: %v", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output: %v", err)
	}
	return count, nil
}

// Subject returns the commit subject line of a ref.
func Subject(ctx context.Context, dir, ref string) (string, error) {
	out, err := outputGit(ctx, dir, "log", "-1", "--format=%s", ref)
	if err != nil {
		return "", fmt.Errorf("failed to get commit subject: %v", err)
	}
	return strings.TrimSpace(string(out)), nil
}
