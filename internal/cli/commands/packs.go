package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kieroneil/ruler/pkg/rules/packs"
)

// PacksOptions holds options for the packs command.
type PacksOptions struct {
	Format string // Output format
}

// NewPacksCommand creates the packs command.
func NewPacksCommand() *cobra.Command {
	opts := &PacksOptions{}
	cmd := &cobra.Command{
		Use:   "packs [pack-name]",
		Short: "List the built-in validation packs",
		Long: `List the built-in validation packs that can be referenced with "use:"
in ruler.yaml, along with the options each pack accepts.`,
		Example: `  # List all built-in packs
  ruler packs

  # Show details for a single pack
  ruler packs in-range

  # Output as JSON
  ruler packs --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showPack(cmd, args[0], opts)
			}
			return listPacks(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json")

	return cmd
}

func listPacks(cmd *cobra.Command, opts *PacksOptions) error {
	all := packs.All()

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(packSummaries(all))
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Type", "Options", "Description"})
	for _, spec := range all {
		t.AppendRow(table.Row{
			spec.Name,
			spec.Type.String(),
			strings.Join(spec.OptionKeys, ", "),
			spec.Description,
		})
	}
	t.AppendFooter(table.Row{"", "", "packs", len(all)})
	t.Render()
	return nil
}

func showPack(cmd *cobra.Command, name string, opts *PacksOptions) error {
	spec, ok := packs.Get(name)
	if !ok {
		return fmt.Errorf("unknown pack %q (run \"ruler packs\" to list available packs)", name)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(packSummaries([]packs.Spec{spec})[0])
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", spec.Name, spec.Type)
	fmt.Fprintf(out, "  %s\n", spec.Description)
	if len(spec.OptionKeys) > 0 {
		fmt.Fprintf(out, "  Options: %s\n", strings.Join(spec.OptionKeys, ", "))
	}
	return nil
}

type packSummary struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
	Description string   `json:"description"`
}

func packSummaries(specs []packs.Spec) []packSummary {
	out := make([]packSummary, 0, len(specs))
	for _, spec := range specs {
		out = append(out, packSummary{
			Name:        spec.Name,
			Type:        spec.Type.String(),
			Options:     spec.OptionKeys,
			Description: spec.Description,
		})
	}
	return out
}
