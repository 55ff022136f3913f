package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"brew-backup/src/safety"
)

func newUninstallCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall <name>...",
		Short: "Uninstall the named packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := brewClient(cmd)
			if err != nil {
				return err
			}
			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				fmt.Fprintf(stdout, "Would uninstall: %s\n", strings.Join(args, ", "))
				return nil
			}
			question := fmt.Sprintf("Uninstall %d package(s): %s?", len(args), strings.Join(args, ", "))
			ok, err := safety.Confirm(opts, cmd.InOrStdin(), stdout, question)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			removed := 0
			var failed []string
			for _, name := range args {
				if err := client.Uninstall(name); err != nil {
					failed = append(failed, name)
					fmt.Fprintf(stderr, "failed: %s: %v\n", name, err)
					continue
				}
				removed++
			}
			fmt.Fprintf(stdout, "Uninstall finished: removed=%d failed=%d\n", removed, len(failed))
			if len(failed) > 0 {
				return fmt.Errorf("uninstall completed with %d failure(s)", len(failed))
			}
			return nil
		},
	}
	return cmd
}
