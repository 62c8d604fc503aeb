package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/git-identity/pkg/identity"
	"github.com/doodlesbykumbi/git-identity/pkg/registry"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an identity to the global store",
	Long: `Add an identity to the global git config, or to the private config
file with --private. Adding an existing id updates its fields.

Example:
  git-identity add -i work -n "Jo Doe" -e jo@example.com
  git-identity add -i oss -n "Jo Doe" -e jo@oss.dev -s 0xABCD -S ~/.ssh/id_oss --private`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ident := identity.Identity{}
		ident.ID, _ = cmd.Flags().GetString("identity")
		ident.Name, _ = cmd.Flags().GetString("name")
		ident.Email, _ = cmd.Flags().GetString("email")
		if cmd.Flags().Changed("signing-key") {
			key, _ := cmd.Flags().GetString("signing-key")
			ident.SigningKey = identity.Optional(key)
		}
		if cmd.Flags().Changed("ssh-key") {
			path, _ := cmd.Flags().GetString("ssh-key")
			ident.SSHKey = identity.Optional(path)
		}

		withEnvironment("add identity", func(env *environment) error {
			return addIdentity(env.registry, ident, env.globalPath, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("identity", "i", "", "Name of the identity")
	addCmd.Flags().StringP("name", "n", "", "Your name")
	addCmd.Flags().StringP("email", "e", "", "Your email")
	addCmd.Flags().StringP("signing-key", "s", "", "Optional gpg signing key id")
	addCmd.Flags().StringP("ssh-key", "S", "", "Optional path to SSH key")
	_ = addCmd.MarkFlagRequired("identity")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("email")
}

func addIdentity(reg *registry.Registry, ident identity.Identity, path string, out io.Writer) error {
	if err := reg.Add(registry.ScopeGlobal, ident); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Added %s: %s to %s\n", ident.ID, ident, path)
	return err
}
