package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/git-identity/pkg/registry"
)

var errIdentityRequired = errors.New("--identity is required with --global")

type removeOptions struct {
	force  bool
	global bool
	id     string
}

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove an identity from this repository or the global list",
	Long: `Remove the active identity from the repository's local config, or an
identity from the global store with --global. Nothing is removed without
--force. Keys named in protected_keys (useconfigonly by default) are kept.

Example:
  git-identity remove --force
  git-identity remove --force --global --identity work`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := removeOptions{}
		opts.force, _ = cmd.Flags().GetBool("force")
		opts.global, _ = cmd.Flags().GetBool("global")
		opts.id, _ = cmd.Flags().GetString("identity")

		if !opts.force {
			fmt.Fprintln(os.Stderr, "-f/--force not given, no action will be taken")
			return
		}

		withEnvironment("remove identity", func(env *environment) error {
			return removeIdentity(env.registry, opts, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolP("force", "f", false, "Act out the removal (nothing happens without this flag)")
	removeCmd.Flags().BoolP("global", "g", false, "Remove from the global identity list")
	removeCmd.Flags().StringP("identity", "i", "", "Identity to remove with --global")
}

func removeIdentity(reg *registry.Registry, opts removeOptions, out io.Writer) error {
	if !opts.force {
		return nil
	}

	var (
		removed []string
		err     error
	)
	if opts.global {
		if opts.id == "" {
			return errIdentityRequired
		}
		removed, err = reg.Remove(registry.ScopeGlobal, opts.id)
	} else {
		removed, err = reg.RemoveAllActive()
	}

	for _, key := range removed {
		if _, werr := fmt.Fprintf(out, "removed %s\n", key); werr != nil {
			return werr
		}
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		_, err = fmt.Fprintln(out, "nothing to remove")
	}
	return err
}
