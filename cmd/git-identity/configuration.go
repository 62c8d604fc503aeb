package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var configurationCmd = &cobra.Command{
	Use:     "configuration",
	Aliases: []string{"config"},
	Short:   "Inspect git-identity settings",
	Long: `Inspect the settings git-identity resolves from config.yml and
GIT_IDENTITY_* environment variables.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		missingSubcommand(cmd, os.Stderr)
		os.Exit(1)
	},
}

// missingSubcommand names the subcommands of cmd on w followed by its usage.
func missingSubcommand(cmd *cobra.Command, w io.Writer) {
	var names []string
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			names = append(names, sub.Name())
		}
	}
	fmt.Fprintf(w, "error: %s needs a subcommand (%s)\n\n", cmd.CommandPath(), strings.Join(names, ", "))
	cmd.SetOut(w)
	_ = cmd.Usage()
}

func init() {
	rootCmd.AddCommand(configurationCmd)
}
