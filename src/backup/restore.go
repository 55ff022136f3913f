package backup

import (
	"fmt"

	"brew-backup/src/brewcli"
)

// FailedInstall records a single package whose install invocation failed.
type FailedInstall struct {
	Package brewcli.Package
	Err     error
}

// Result summarises a restore run.
type Result struct {
	Installed []brewcli.Package
	Failed    []FailedInstall
	Skipped   []brewcli.Package
}

// Summary returns a one-line account of the run.
func (r Result) Summary() string {
	return fmt.Sprintf("installed=%d failed=%d skipped=%d",
		len(r.Installed), len(r.Failed), len(r.Skipped))
}

// Reporter receives progress as each entry is processed. May be nil.
type Reporter func(pkg brewcli.Package, err error)

// Restore installs every entry in order, one brew invocation per entry.
// A failing entry is recorded and the run continues with the remaining
// entries; the whole run never aborts on a single failure.
func Restore(client brewcli.Client, entries []brewcli.Package, report Reporter) Result {
	var res Result
	for _, pkg := range entries {
		err := client.Install(pkg)
		if report != nil {
			report(pkg, err)
		}
		if err != nil {
			res.Failed = append(res.Failed, FailedInstall{Package: pkg, Err: err})
			continue
		}
		res.Installed = append(res.Installed, pkg)
	}
	return res
}

// RestorePlan installs the plan's pending entries and records the
// already-installed ones as skipped.
func RestorePlan(client brewcli.Client, plan Plan, report Reporter) Result {
	res := Restore(client, plan.ToInstall, report)
	res.Skipped = append(res.Skipped, plan.AlreadyInstalled...)
	return res
}
