package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newSearchCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search Homebrew for packages matching a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := brewClient(cmd)
			if err != nil {
				return err
			}
			results, err := client.Search(args[0])
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(stdout, "No packages found.")
				return nil
			}
			for _, name := range results {
				fmt.Fprintln(stdout, name)
			}
			return nil
		},
	}
}
