package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"brew-backup/src/backup"
	"brew-backup/src/brewcli"
	"brew-backup/src/history"
	"brew-backup/src/manifest"
	"brew-backup/src/safety"
	"brew-backup/src/store/directory"
	"brew-backup/src/target"
	"brew-backup/src/util/progress"
)

func newRestoreCmd(stdout, stderr io.Writer) *cobra.Command {
	var file, tgtStr, version string
	var skipInstalled bool
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Install packages from a saved manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			manifestPath, err := resolveManifestPath(cfg.Defaults.Target, file, tgtStr, version)
			if err != nil {
				return err
			}

			// Parse before touching brew: a bad manifest aborts the run
			// with zero install invocations.
			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}
			entries := m.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(stdout, "Manifest is empty; nothing to do.")
				return nil
			}

			info, err := checkBrewBinary(cmd, cfg)
			if err != nil {
				return err
			}
			client := newBrewClientFn(info)

			plan := backup.Plan{ToInstall: entries}
			if skipInstalled {
				plan, err = backup.CurrentPlan(client, entries)
				if err != nil {
					return err
				}
			}

			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				renderPlan(stdout, plan)
				return nil
			}
			question := fmt.Sprintf("Install %d package(s) from %s?", len(plan.ToInstall), manifestPath)
			if len(plan.AlreadyInstalled) > 0 {
				question = fmt.Sprintf("Install %d package(s) from %s (%d already installed, skipped)?",
					len(plan.ToInstall), manifestPath, len(plan.AlreadyInstalled))
			}
			ok, err := safety.Confirm(opts, cmd.InOrStdin(), stdout, question)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			started := time.Now()
			counter := progress.NewCounter(stdout, "restore", len(plan.ToInstall))
			res := backup.RestorePlan(client, plan, func(pkg brewcli.Package, err error) {
				counter.Step(pkg.Name)
			})
			counter.Done()

			for _, f := range res.Failed {
				fmt.Fprintf(stderr, "failed: %s: %v\n", f.Package, f.Err)
			}
			fmt.Fprintf(stdout, "Restore finished: %s\n", res.Summary())
			recordRun(cfg, history.Run{
				Kind:       history.KindRestore,
				StartedAt:  started,
				FinishedAt: time.Now(),
				Manifest:   manifestPath,
				Packages:   len(entries),
				Installed:  len(res.Installed),
				Failed:     len(res.Failed),
				Skipped:    len(res.Skipped),
			})
			if n := len(res.Failed); n > 0 {
				return fmt.Errorf("restore completed with %d failed install(s)", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Manifest file to read (e.g., apps.json)")
	cmd.Flags().StringVar(&tgtStr, "target", "", "Backend target URI (e.g., dir:/path)")
	cmd.Flags().StringVar(&version, "version", "", "Snapshot timestamp (default: latest)")
	cmd.Flags().BoolVar(&skipInstalled, "skip-installed", false, "Skip packages that are already installed")
	return cmd
}

// resolveManifestPath turns the --file/--target flags (with the configured
// default target as fallback) into a concrete manifest file path.
func resolveManifestPath(defaultTarget, file, tgtStr, version string) (string, error) {
	if file != "" && tgtStr != "" {
		return "", errors.New("--file and --target are mutually exclusive")
	}
	if file != "" {
		return file, nil
	}
	if tgtStr == "" {
		tgtStr = defaultTarget
	}
	if tgtStr == "" {
		return "", errors.New("--file or --target is required (e.g., --file apps.json or --target dir:/path)")
	}
	tgt, err := target.Parse(tgtStr)
	if err != nil {
		return "", err
	}
	st, err := directory.New(tgt.DirPath)
	if err != nil {
		return "", err
	}
	entry, err := st.Resolve(version)
	if err != nil {
		return "", err
	}
	return filepath.Join(entry.Path, "packages.json"), nil
}

func renderPlan(w io.Writer, p backup.Plan) {
	fmt.Fprintf(w, "Restore preview\n")
	fmt.Fprintf(w, "Install: %d\n", len(p.ToInstall))
	for _, pkg := range p.ToInstall {
		fmt.Fprintf(w, "  + %s\n", pkg)
	}
	fmt.Fprintf(w, "Already installed: %d\n", len(p.AlreadyInstalled))
	for _, pkg := range p.AlreadyInstalled {
		fmt.Fprintf(w, "  = %s\n", pkg)
	}
}
