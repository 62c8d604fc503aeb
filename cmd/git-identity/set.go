package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/git-identity/pkg/registry"
	"github.com/doodlesbykumbi/git-identity/pkg/selector"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set [identity]",
	Short: "Set the identity for the current repository",
	Long: `Copy an identity into the repository's local config. Without an
argument the identity is chosen interactively.

Fields the previously active identity had and the new one lacks (such as
a signing key) stay set; run "git-identity remove --force" first to clear
them.

Example:
  git-identity set work
  git-identity set`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		env, err := newEnvironment()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer env.Close()
		ids, err := env.registry.List(registry.ScopeGlobal)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		withEnvironment("set identity", func(env *environment) error {
			if len(args) == 1 {
				return setIdentity(env.registry, args[0], nil, os.Stdout)
			}
			sel, err := env.selector()
			if err != nil {
				return err
			}
			return setIdentity(env.registry, "", sel, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}

// setIdentity activates id, asking sel for one when id is empty.
func setIdentity(reg *registry.Registry, id string, sel selector.Selector, out io.Writer) error {
	if !reg.HasLocal() {
		return registry.ErrNoLocalScope
	}

	if id == "" {
		ids, err := reg.List(registry.ScopeGlobal)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			_, err := fmt.Fprintln(out, "no identities to choose from")
			return err
		}

		chosen, ok, err := sel.Choose(ids)
		if err != nil {
			return err
		}
		if !ok {
			_, err := fmt.Fprintln(out, "no identity selected")
			return err
		}
		id = chosen
	}

	ident, err := reg.Activate(id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Using %s: %s\n", ident.ID, ident)
	return err
}
