// Package git wraps the git porcelain commands prep depends on:
// branch resolution, cleanliness and content-equality checks, and the
// mutation primitives driven by the squash pipeline.
//
// Everything shells out to the git binary through internal/cmd; there is
// no in-process git implementation.
package git
