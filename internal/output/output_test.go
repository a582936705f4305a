package output

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/bkrems/prep/internal/ui/styles"
)

func TestPrinter(t *testing.T) {
	t.Parallel()

	t.Run("printf", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := New(&buf)
		p.Printf("step %d: %s\n", 3, "squash")
		if got := buf.String(); got != "step 3: squash\n" {
			t.Errorf("Printf output = %q, want %q", got, "step 3: squash\n")
		}
	})

	t.Run("println", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := New(&buf)
		p.Println("done")
		if got := buf.String(); got != "done\n" {
			t.Errorf("Println output = %q, want %q", got, "done\n")
		}
	})
}

func TestStyledLines(t *testing.T) {
	t.Parallel()

	t.Run("pass carries the check mark", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf).Pass("working tree is clean")
		got := buf.String()
		if !strings.Contains(got, styles.CheckMark) || !strings.Contains(got, "working tree is clean") {
			t.Errorf("Pass output = %q, want mark and text", got)
		}
	})

	t.Run("fail carries the cross mark", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		New(&buf).Fail("you need to push")
		got := buf.String()
		if !strings.Contains(got, styles.CrossMark) || !strings.Contains(got, "you need to push") {
			t.Errorf("Fail output = %q, want mark and text", got)
		}
	})

	t.Run("success and muted write one line each", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := New(&buf)
		p.Success("all in sync")
		p.Muted("push with: git push")
		got := buf.String()
		if !strings.Contains(got, "all in sync") || !strings.Contains(got, "push with: git push") {
			t.Errorf("output = %q, want both lines", got)
		}
		if strings.Count(got, "\n") != 2 {
			t.Errorf("output = %q, want two lines", got)
		}
	})
}

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		ctx := WithPrinter(context.Background(), &buf)
		p := FromContext(ctx)
		p.Println("hello")
		if got := buf.String(); got != "hello\n" {
			t.Errorf("printer from context wrote %q, want %q", got, "hello\n")
		}
	})

	t.Run("fallback stdout printer", func(t *testing.T) {
		t.Parallel()
		p := FromContext(context.Background())
		if p == nil {
			t.Fatal("FromContext returned nil for empty context")
		}
		if p.Writer() != os.Stdout {
			t.Error("fallback printer should write to os.Stdout")
		}
	})
}
