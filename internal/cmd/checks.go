package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clawaudit/clawaudit/internal/audit"
)

type checkInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newChecksCommand() *cobra.Command {
	var asJSON bool

	checksCmd := &cobra.Command{
		Use:   "checks",
		Short: "List the security domains in report order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := audit.DefaultCatalog()
			infos := make([]checkInfo, len(catalog))
			for i, check := range catalog {
				infos[i] = checkInfo{Name: check.Name(), Description: audit.Describe(check)}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			for i, info := range infos {
				fmt.Fprintf(out, "%d. %s\n", i+1, info.Name)
				if info.Description != "" {
					fmt.Fprintf(out, "   %s\n", info.Description)
				}
			}
			return nil
		},
	}

	checksCmd.Flags().BoolVar(&asJSON, "json", false, "output the catalog as JSON")
	return checksCmd
}
