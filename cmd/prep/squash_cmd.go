package main

import (
	"github.com/spf13/cobra"
)

func newSquashCmd() *cobra.Command {
	var (
		message     string
		push        bool
		noPush      bool
		yes         bool
		dryRun      bool
		copySubject bool
	)

	cmd := &cobra.Command{
		Use:   "squash [main-branch]",
		Short: "Squash the current branch into a single commit on main",
		Long: `Squash rewrites the current feature branch into one commit on top of
the main branch, step by step with a review prompt before each command.
The squash is staged on a reserved temp branch and verified to have
identical content before the feature branch is touched.

Whether the result is force-pushed at the end is decided, in order of
precedence, by --push/--no-push, by the invocation name (a binary or
symlink named like 'prep-push' pushes by default), and by the config
file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mainArg := ""
			if len(args) > 0 {
				mainArg = args[0]
			}

			doPush := cfg.Push || invokedAsPush()
			if cmd.Flags().Changed("push") {
				doPush = push
			}
			if noPush {
				doPush = false
			}

			return runSquash(cmd.Context(), workDir, squashOptions{
				mainArg:     mainArg,
				message:     message,
				push:        doPush,
				yes:         yes,
				dryRun:      dryRun,
				copySubject: copySubject,
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message for the squashed commit")
	cmd.Flags().BoolVar(&push, "push", false, "Force-push the squashed branch to origin")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "Never push, overriding config and invocation name")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Run every step without the review prompt")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the pipeline without executing anything")
	cmd.Flags().BoolVar(&copySubject, "copy", false, "Copy the squashed commit subject to the clipboard")
	cmd.MarkFlagsMutuallyExclusive("push", "no-push")
	cmd.MarkFlagsMutuallyExclusive("yes", "dry-run")

	return cmd
}
