package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bkrems/prep/internal/config"
	"github.com/bkrems/prep/internal/git"
	"github.com/bkrems/prep/internal/log"
	"github.com/bkrems/prep/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg     *config.Config
	workDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prep",
	Short: "Prepare clean single-commit pull requests",
	Long: `prep verifies that a feature branch is fully synchronized with the
upstream main branch and squashes its history into a single clean
commit through a guided, confirm-before-run pipeline.

Install a prep-push symlink (or alias) to make 'squash' force-push
the result by default.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		// Flags are parsed by now; this is the earliest point where the
		// logger can honor --verbose and --quiet.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		ctx = output.WithPrinter(ctx, os.Stdout)
		cmd.SetContext(ctx)
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// invokedAsPush reports whether the binary was invoked under a name
// containing "push" (prep-push symlink). The same pipeline serves both
// the prepare and the prepare-and-push commands; only the invocation
// name distinguishes them.
func invokedAsPush() bool {
	return strings.Contains(filepath.Base(os.Args[0]), "push")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "prep: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling. An interrupt mid-pipeline
	// aborts the current step; the temp-branch existence check catches
	// the leftover state on the next run. The logger and printer are
	// attached in PersistentPreRunE, after the flags are parsed.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSquashCmd())
	rootCmd.AddCommand(newConfigCmd())
}
