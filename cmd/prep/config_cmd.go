package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bkrems/prep/internal/config"
	"github.com/bkrems/prep/internal/output"
	"github.com/bkrems/prep/internal/ui/prompt"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the prep configuration file",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return fmt.Errorf("cannot determine config path: %w", err)
			}
			if !force && isatty.IsTerminal(os.Stdin.Fd()) {
				if _, statErr := os.Stat(path); statErr == nil {
					res, err := prompt.Confirm(fmt.Sprintf("%s already exists, overwrite it?", path))
					if err != nil {
						return err
					}
					if !res.Confirmed {
						return fmt.Errorf("aborted")
					}
					force = true
				}
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			return toml.NewEncoder(out.Writer()).Encode(cfg)
		},
	}
}
