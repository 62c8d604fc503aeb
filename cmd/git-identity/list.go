package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/git-identity/pkg/identity"
	"github.com/doodlesbykumbi/git-identity/pkg/registry"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available identities",
	Long: `List the identities of the global store. In a repository the active
identity is marked with "*".

Example:
  git-identity list
  git-identity list --output json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		withEnvironment("list identities", func(env *environment) error {
			return listIdentities(env.registry, output, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("output", "o", "text", "Output format (text, json or yaml)")
}

func listIdentities(reg *registry.Registry, output string, out io.Writer) error {
	identities, err := reg.Identities(registry.ScopeGlobal)
	if err != nil {
		return err
	}

	switch output {
	case "json":
		data, err := json.MarshalIndent(identities, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(identities)
	case "text", "":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	if len(identities) == 0 {
		_, err := fmt.Fprintln(out, "no identities")
		return err
	}

	var active string
	if reg.HasLocal() {
		current, err := reg.Current()
		if err != nil {
			return err
		}
		if current != nil {
			active = current.ID
		}
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"", "ID", "NAME", "EMAIL", "SIGNING KEY", "SSH KEY"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, ident := range identities {
		marker := ""
		if ident.ID == active {
			marker = "*"
		}
		table.Append([]string{
			marker,
			ident.ID,
			ident.Name,
			ident.Email,
			identity.Deref(ident.SigningKey),
			identity.Deref(ident.SSHKey),
		})
	}
	table.Render()
	return nil
}
