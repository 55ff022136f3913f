package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"brew-backup/src/backup"
)

func newInstalledCmd(stdout, stderr io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "installed",
		Short: "Show the currently installed formulae and casks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := brewClient(cmd)
			if err != nil {
				return err
			}
			m, err := backup.Collect(client)
			if err != nil {
				return err
			}
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			case "table", "":
				tw := tabwriter.NewWriter(stdout, 0, 2, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tKIND")
				for _, pkg := range m.Entries() {
					fmt.Fprintf(tw, "%s\t%s\n", pkg.Name, pkg.Kind)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}
