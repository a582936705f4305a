//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bkrems/prep/internal/config"
	"github.com/bkrems/prep/internal/log"
	"github.com/bkrems/prep/internal/output"
)

func init() {
	c := config.Default()
	cfg = &c
	// A GIT_DIR inherited from the environment would trip the hook
	// guard's secondary signal and no-op every pipeline test.
	os.Unsetenv("GIT_DIR")
}

// testContext returns a context with a logger and printer capturing all
// output into the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, false, false))
	ctx = output.WithPrinter(ctx, &buf)
	return ctx, &buf
}

func run(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %v failed: %v\n%s", name, args, err, out)
	}
	return strings.TrimSpace(string(out))
}

func commitFile(t *testing.T, dir, name, content, message string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	run(t, dir, "git", "add", name)
	run(t, dir, "git", "commit", "-m", message)
}

// setupRepoWithOrigin creates a bare origin, clones it, and seeds the
// clone with an initial commit on main pushed to origin. Returns the
// clone's working directory.
func setupRepoWithOrigin(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	origin := filepath.Join(base, "origin.git")
	run(t, base, "git", "init", "--bare", origin)

	clone := filepath.Join(base, "clone")
	run(t, base, "git", "clone", origin, clone)
	run(t, clone, "git", "config", "user.email", "test@example.com")
	run(t, clone, "git", "config", "user.name", "Test User")
	run(t, clone, "git", "config", "commit.gpgsign", "false")
	run(t, clone, "git", "checkout", "-b", "main")

	commitFile(t, clone, "README.md", "# test\n", "initial commit")
	run(t, clone, "git", "push", "-u", "origin", "main")
	return clone
}

// setupFeatureBranch creates a feature branch with one extra commit,
// pushed to origin, and leaves it checked out.
func setupFeatureBranch(t *testing.T, clone string) {
	t.Helper()
	run(t, clone, "git", "checkout", "-b", "feature")
	commitFile(t, clone, "feature.txt", "one\n", "add feature file")
	run(t, clone, "git", "push", "-u", "origin", "feature")
}
