// Package proc resolves process ancestry for the hook guard.
//
// The squash pipeline must never run as a side effect of a git hook: its
// later steps hard-reset and force-push. Git hooks run with the git
// process as an ancestor, so walking the parent chain and matching
// command names is the authoritative signal. The GIT_DIR environment
// check some hooks rely on is unreliable on modern git and is only kept
// as a secondary best-effort signal by the caller.
package proc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Table looks up process information by pid.
type Table interface {
	// Parent returns the parent pid of pid.
	Parent(pid int) (int, error)
	// Name returns the command name (comm) of pid.
	Name(pid int) (string, error)
}

// System returns a Table backed by /proc where available and by ps(1)
// elsewhere.
func System() Table {
	if runtime.GOOS == "linux" {
		if _, err := os.Stat("/proc/self/stat"); err == nil {
			return procfsTable{}
		}
	}
	return psTable{}
}

// FindAncestor walks the parent chain from pid up to pid 1, returning
// the first ancestor whose command name equals name. The starting pid
// itself is not considered. The walk stops, reporting not-found, when
// the table cannot resolve a process.
func FindAncestor(t Table, pid int, name string) (int, bool) {
	for pid > 1 {
		parent, err := t.Parent(pid)
		if err != nil || parent == pid {
			return 0, false
		}
		if parent <= 1 {
			return 0, false
		}
		comm, err := t.Name(parent)
		if err != nil {
			return 0, false
		}
		if comm == name {
			return parent, true
		}
		pid = parent
	}
	return 0, false
}

// InvokedFromGitHook reports whether the current process has git as an
// ancestor, or the best-effort GIT_DIR environment signal is present.
func InvokedFromGitHook() bool {
	if _, ok := FindAncestor(System(), os.Getpid(), "git"); ok {
		return true
	}
	// GIT_DIR is exported during hook execution on older git versions.
	// Known unreliable on current git; kept as a secondary signal only.
	return os.Getenv("GIT_DIR") != ""
}

// procfsTable reads /proc/<pid>/stat.
type procfsTable struct{}

func (procfsTable) stat(pid int) (comm string, ppid int, err error) {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		return "", 0, err
	}
	// Format: pid (comm) state ppid ...
	// comm may contain spaces and parentheses; split on the last ')'.
	s := string(data)
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return "", 0, fmt.Errorf("malformed stat for pid %d", pid)
	}
	comm = s[open+1 : end]
	fields := strings.Fields(s[end+1:])
	if len(fields) < 2 {
		return "", 0, fmt.Errorf("malformed stat for pid %d", pid)
	}
	ppid, err = strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("malformed ppid for pid %d: %v", pid, err)
	}
	return comm, ppid, nil
}

func (t procfsTable) Parent(pid int) (int, error) {
	_, ppid, err := t.stat(pid)
	return ppid, err
}

func (t procfsTable) Name(pid int) (string, error) {
	comm, _, err := t.stat(pid)
	return comm, err
}

// psTable shells out to ps(1) for platforms without procfs.
type psTable struct{}

func psOutput(args ...string) (string, error) {
	out, err := exec.Command("ps", args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (psTable) field(pid int, key string) (string, error) {
	out, err := psOutput("-o", key+"=", "-p", strconv.Itoa(pid))
	if err != nil {
		return "", err
	}
	val := strings.TrimSpace(out)
	if val == "" {
		return "", fmt.Errorf("no such process: %d", pid)
	}
	return val, nil
}

func (t psTable) Parent(pid int) (int, error) {
	val, err := t.field(pid, "ppid")
	if err != nil {
		return 0, err
	}
	ppid, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("unexpected ps output %q: %v", val, err)
	}
	return ppid, nil
}

func (t psTable) Name(pid int) (string, error) {
	comm, err := t.field(pid, "comm")
	if err != nil {
		return "", err
	}
	// ps may report a full path; only the base name is compared.
	return filepath.Base(comm), nil
}
