package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"brew-backup/src/backup"
	"brew-backup/src/history"
	"brew-backup/src/target"
)

func newBackupCmd(stdout, stderr io.Writer) *cobra.Command {
	var file, tgtStr string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export installed formulae and casks to a JSON manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if file != "" && tgtStr != "" {
				return errors.New("--file and --target are mutually exclusive")
			}
			if file == "" && tgtStr == "" {
				tgtStr = cfg.Defaults.Target
			}
			if file == "" && tgtStr == "" {
				return errors.New("--file or --target is required (e.g., --file apps.json or --target dir:/path)")
			}

			info, err := checkBrewBinary(cmd, cfg)
			if err != nil {
				return err
			}
			client := newBrewClientFn(info)

			opts := getSafetyOptions(cmd)
			started := time.Now()

			if file != "" {
				if opts.DryRun {
					m, err := backup.Collect(client)
					if err != nil {
						return err
					}
					fmt.Fprintf(stdout, "Would write %d formulae and %d casks to %s\n", len(m.Formulae), len(m.Casks), file)
					return nil
				}
				m, err := backup.Export(client, file)
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Exported %d formulae and %d casks to %s\n", len(m.Formulae), len(m.Casks), file)
				recordRun(cfg, history.Run{
					Kind:       history.KindBackup,
					StartedAt:  started,
					FinishedAt: time.Now(),
					Manifest:   file,
					Packages:   m.Count(),
				})
				return nil
			}

			tgt, err := target.Parse(tgtStr)
			if err != nil {
				return err
			}
			if opts.DryRun {
				m, err := backup.Collect(client)
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Would snapshot %d formulae and %d casks under %s\n", len(m.Formulae), len(m.Casks), tgt.DirPath)
				return nil
			}
			snapDir, m, err := backup.Snapshot(client, tgt.DirPath, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Created snapshot %s\n", snapDir)
			recordRun(cfg, history.Run{
				Kind:       history.KindBackup,
				StartedAt:  started,
				FinishedAt: time.Now(),
				Manifest:   snapDir,
				Packages:   m.Count(),
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Manifest file to write (e.g., apps.json)")
	cmd.Flags().StringVar(&tgtStr, "target", "", "Backend target URI (e.g., dir:/path)")
	return cmd
}
