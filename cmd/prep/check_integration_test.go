//go:build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCheck_DirtyTreeFailsFirst(t *testing.T) {
	t.Parallel()
	clone := setupRepoWithOrigin(t)
	setupFeatureBranch(t, clone)

	// Dirty the tree AND leave the branch unpushed relative to main; the
	// dirty-tree condition must win because it is checked first.
	if err := os.WriteFile(filepath.Join(clone, "README.md"), []byte("dirty\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, buf := testContext(t)
	err := runCheck(ctx, clone, "")
	if err == nil {
		t.Fatal("runCheck on dirty tree = nil, want error")
	}
	if !strings.Contains(buf.String(), "not clean") {
		t.Errorf("output = %q, want dirty-tree diagnostic", buf.String())
	}
	if strings.Contains(buf.String(), "push") {
		t.Errorf("output = %q, later conditions must not be reported", buf.String())
	}
}

func TestRunCheck_UnpushedFails(t *testing.T) {
	t.Parallel()
	clone := setupRepoWithOrigin(t)
	setupFeatureBranch(t, clone)
	commitFile(t, clone, "local.txt", "only local\n", "unpushed commit")

	ctx, buf := testContext(t)
	if err := runCheck(ctx, clone, ""); err == nil {
		t.Fatal("runCheck with unpushed commit = nil, want error")
	}
	if !strings.Contains(buf.String(), "you need to push") {
		t.Errorf("output = %q, want push remedy", buf.String())
	}
}

func TestRunCheck_MissingRemoteBranchFails(t *testing.T) {
	t.Parallel()
	clone := setupRepoWithOrigin(t)
	run(t, clone, "git", "checkout", "-b", "feature")
	commitFile(t, clone, "feature.txt", "one\n", "add feature file")

	// Never pushed: no origin/feature at all. Reported as the push
	// condition, not as a git error.
	ctx, buf := testContext(t)
	if err := runCheck(ctx, clone, ""); err == nil {
		t.Fatal("runCheck without remote branch = nil, want error")
	}
	if !strings.Contains(buf.String(), "you need to push") {
		t.Errorf("output = %q, want push remedy", buf.String())
	}
}

func TestRunCheck_RemoteMainNotMergedFails(t *testing.T) {
	t.Parallel()
	clone := setupRepoWithOrigin(t)
	setupFeatureBranch(t, clone)

	ctx, buf := testContext(t)
	if err := runCheck(ctx, clone, ""); err == nil {
		t.Fatal("runCheck = nil, want error")
	}
	if !strings.Contains(buf.String(), "merge the remote main") {
		t.Errorf("output = %q, want remote-merge remedy", buf.String())
	}
}

func TestRunCheck_StaleLocalMainFailsLast(t *testing.T) {
	t.Parallel()
	clone := setupRepoWithOrigin(t)
	setupFeatureBranch(t, clone)

	// Land the feature content on origin's main without touching the
	// local main. Conditions 1-3 hold; only the local main lags.
	run(t, clone, "git", "push", "origin", "feature:main")

	ctx, buf := testContext(t)
	if err := runCheck(ctx, clone, ""); err == nil {
		t.Fatal("runCheck with stale local main = nil, want error")
	}
	if !strings.Contains(buf.String(), "you need to pull main") {
		t.Errorf("output = %q, want pull remedy", buf.String())
	}
	// The three passed conditions are still reported.
	if got := strings.Count(buf.String(), "✓"); got != 3 {
		t.Errorf("passed checks = %d, want 3\noutput: %s", got, buf.String())
	}
}

func TestRunCheck_FullySyncedPasses(t *testing.T) {
	t.Parallel()
	clone := setupRepoWithOrigin(t)
	setupFeatureBranch(t, clone)

	run(t, clone, "git", "push", "origin", "feature:main")
	run(t, clone, "git", "checkout", "main")
	run(t, clone, "git", "pull", "origin", "main")
	run(t, clone, "git", "checkout", "feature")

	ctx, buf := testContext(t)
	if err := runCheck(ctx, clone, ""); err != nil {
		t.Fatalf("runCheck = %v, want nil\noutput: %s", err, buf.String())
	}
	if got := strings.Count(buf.String(), "✓"); got != 4 {
		t.Errorf("passed checks = %d, want 4\noutput: %s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "in sync with main") {
		t.Errorf("output = %q, want success line", buf.String())
	}
}

func TestRunCheck_OnMainIsAnError(t *testing.T) {
	t.Parallel()
	clone := setupRepoWithOrigin(t)

	ctx, _ := testContext(t)
	err := runCheck(ctx, clone, "")
	if err == nil || !strings.Contains(err.Error(), "already on") {
		t.Errorf("runCheck on main = %v, want already-on error", err)
	}
}

func TestRunCheck_MainArgOverridesDetection(t *testing.T) {
	t.Parallel()
	clone := setupRepoWithOrigin(t)

	// A trunk branch alongside main; the positional argument must win
	// over detection.
	run(t, clone, "git", "checkout", "-b", "trunk")
	run(t, clone, "git", "push", "-u", "origin", "trunk")
	run(t, clone, "git", "checkout", "-b", "feature")
	run(t, clone, "git", "push", "-u", "origin", "feature")

	ctx, buf := testContext(t)
	if err := runCheck(ctx, clone, "trunk"); err != nil {
		t.Fatalf("runCheck = %v, want nil\noutput: %s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "in sync with trunk") {
		t.Errorf("output = %q, want trunk named as main", buf.String())
	}
}
