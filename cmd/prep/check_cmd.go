package main

import (
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [main-branch]",
		Short: "Verify the current branch is in sync with main",
		Long: `Check runs four ordered conditions against the current branch:

  1. the working tree is clean
  2. the branch matches its origin counterpart (pushed)
  3. the branch matches the remote main branch (remote main merged)
  4. the branch matches the local main branch (local main pulled)

The first failing condition stops the check and names the remedy. The
main branch is detected (master, then main) unless given as an argument
or set in the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mainArg := ""
			if len(args) > 0 {
				mainArg = args[0]
			}
			return runCheck(cmd.Context(), workDir, mainArg)
		},
	}
}
