package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// genCompletionCmd represents the gen-completion command
var genCompletionCmd = &cobra.Command{
	Use:   "gen-completion",
	Short: "Generate shell completion",
	Long: `Generate a completion script for bash, zsh, fish or powershell.

Example:
  git-identity gen-completion -s bash > /etc/bash_completion.d/git-identity
  git-identity gen-completion -s zsh > "${fpath[1]}/_git-identity"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		shell, _ := cmd.Flags().GetString("shell")
		if err := genCompletion(rootCmd, shell, os.Stdout); err != nil {
			fail("generate completion", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(genCompletionCmd)
	genCompletionCmd.Flags().StringP("shell", "s", "", "Shell to generate completion for (bash, zsh, fish, powershell)")
	_ = genCompletionCmd.MarkFlagRequired("shell")
}

func genCompletion(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}
