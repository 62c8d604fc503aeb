package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/git-identity/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show git-identity configuration attributes and their sources",
	Long: `Show git-identity configuration attributes and their sources.

Config file location: $XDG_CONFIG_HOME/git-identity/config.yml (or
GIT_IDENTITY_CONFIG_PATH)

Example:
  git-identity configuration show
  git-identity configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(output, os.Stdout); err != nil {
			fail("show configuration", err)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(output string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if output == "json" {
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, jsonOutput)
		return err
	}

	_, err = fmt.Fprint(out, cfg.FormatText())
	return err
}
