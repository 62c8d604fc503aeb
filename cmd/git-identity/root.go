package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	privateMode bool
)

var rootCmd = &cobra.Command{
	Use:   "git-identity",
	Short: "Manage git identities",
	Long: `Keep several git identities (name, email, signing key, SSH key) in the
global git config and switch the identity used by the current repository.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&privateMode, "private", "p", false, "Use the private config file instead of the global one")

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
