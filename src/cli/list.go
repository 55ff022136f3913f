package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"brew-backup/src/backup"
	"brew-backup/src/manifest"
	"brew-backup/src/store"
	"brew-backup/src/store/directory"
	"brew-backup/src/target"
)

func newListCmd(stdout, stderr io.Writer) *cobra.Command {
	var file, tgtStr, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots in a target, or show a manifest file's contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" && tgtStr != "" {
				return errors.New("--file and --target are mutually exclusive")
			}
			if file != "" {
				m, err := manifest.Load(file)
				if err != nil {
					return err
				}
				return renderManifest(stdout, m, output)
			}
			if tgtStr == "" {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				tgtStr = cfg.Defaults.Target
			}
			if tgtStr == "" {
				return errors.New("--file or --target is required (e.g., --target dir:/path)")
			}
			tgt, err := target.Parse(tgtStr)
			if err != nil {
				return err
			}
			st, err := directory.New(tgt.DirPath)
			if err != nil {
				return err
			}
			entries, err := st.List()
			if err != nil {
				return err
			}
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "table", "":
				return renderSnapshotTable(stdout, entries)
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Manifest file to show")
	cmd.Flags().StringVar(&tgtStr, "target", "", "Backend target URI (e.g., dir:/path)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func renderManifest(w io.Writer, m manifest.Manifest, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND")
		for _, pkg := range m.Entries() {
			fmt.Fprintf(tw, "%s\t%s\n", pkg.Name, pkg.Kind)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported --output: %s", output)
	}
}

func renderSnapshotTable(w io.Writer, entries []store.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tFORMULAE\tCASKS\tPATH")
	for _, e := range entries {
		formulae, casks := snapshotCounts(e.Path)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp, formulae, casks, e.Path)
	}
	return tw.Flush()
}

// snapshotCounts reads snapshot metadata best effort; older or partial
// snapshots render as "-".
func snapshotCounts(snapDir string) (string, string) {
	data, err := os.ReadFile(filepath.Join(snapDir, "manifest.json"))
	if err != nil {
		return "-", "-"
	}
	var meta backup.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return "-", "-"
	}
	return fmt.Sprintf("%d", meta.Formulae), fmt.Sprintf("%d", meta.Casks)
}
