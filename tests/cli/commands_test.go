package cli_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"brew-backup/src/brewcli"
	"brew-backup/src/manifest"
)

func TestInstalled_Table(t *testing.T) {
	fake := brewcli.NewFake()
	fake.Formulae = []string{"git", "wget"}
	fake.Casks = []string{"firefox"}
	withFakeBrew(t, fake)

	out, _, err := runCommand(t, "installed")
	if err != nil {
		t.Fatalf("installed: %v", err)
	}
	for _, want := range []string{"NAME", "git", "wget", "firefox", "cask"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %s", want, out)
		}
	}
}

func TestInstalled_JSON(t *testing.T) {
	fake := brewcli.NewFake()
	fake.Formulae = []string{"git"}
	withFakeBrew(t, fake)

	out, _, err := runCommand(t, "installed", "--output", "json")
	if err != nil {
		t.Fatalf("installed: %v", err)
	}
	var m manifest.Manifest
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(m.Formulae) != 1 || m.Formulae[0] != "git" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestSearch_PrintsResults(t *testing.T) {
	fake := brewcli.NewFake()
	fake.SearchResults["wget"] = []string{"wget", "wget2"}
	withFakeBrew(t, fake)

	out, _, err := runCommand(t, "search", "wget")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "wget2") {
		t.Fatalf("missing search result: %s", out)
	}
}

func TestSearch_NoResults(t *testing.T) {
	fake := brewcli.NewFake()
	withFakeBrew(t, fake)

	out, _, err := runCommand(t, "search", "no-such-thing")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "No packages found.") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestUninstall_ConfirmedRemoves(t *testing.T) {
	fake := brewcli.NewFake()
	fake.Formulae = []string{"git", "wget"}
	withFakeBrew(t, fake)

	out, _, err := runCommand(t, "uninstall", "git", "--yes")
	if err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if len(fake.UninstallCalls) != 1 || fake.UninstallCalls[0] != "git" {
		t.Fatalf("unexpected uninstall calls: %+v", fake.UninstallCalls)
	}
	if !strings.Contains(out, "removed=1 failed=0") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestUninstall_PartialFailure(t *testing.T) {
	fake := brewcli.NewFake()
	fake.UninstallErrs["wget"] = &brewcli.CommandError{Args: []string{"uninstall", "--force", "wget"}, ExitCode: 1, Stderr: "permission denied"}
	withFakeBrew(t, fake)

	out, errOut, err := runCommand(t, "uninstall", "wget", "git", "--yes")
	if err == nil {
		t.Fatalf("expected error for partial failure")
	}
	if len(fake.UninstallCalls) != 2 {
		t.Fatalf("all packages must be attempted: %+v", fake.UninstallCalls)
	}
	if !strings.Contains(out, "removed=1 failed=1") {
		t.Fatalf("unexpected summary: %s", out)
	}
	if !strings.Contains(errOut, "wget") {
		t.Fatalf("failure should name the package: %s", errOut)
	}
}

func TestUninstall_DryRun(t *testing.T) {
	fake := brewcli.NewFake()
	withFakeBrew(t, fake)

	out, _, err := runCommand(t, "uninstall", "git", "--dry-run")
	if err != nil {
		t.Fatalf("uninstall dry-run: %v", err)
	}
	if len(fake.UninstallCalls) != 0 {
		t.Fatalf("dry-run must not uninstall")
	}
	if !strings.Contains(out, "Would uninstall: git") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestList_ManifestFile(t *testing.T) {
	fake := brewcli.NewFake()
	withFakeBrew(t, fake)

	file := filepath.Join(t.TempDir(), "apps.json")
	m := manifest.New([]string{"git"}, []string{"firefox"})
	if err := m.Save(file); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, _, err := runCommand(t, "list", "--file", file)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "git") || !strings.Contains(out, "firefox") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestList_SnapshotTarget(t *testing.T) {
	fake := brewcli.NewFake()
	fake.Formulae = []string{"git", "wget"}
	withFakeBrew(t, fake)

	root := t.TempDir()
	if _, _, err := runCommand(t, "backup", "--target", "dir:"+root); err != nil {
		t.Fatalf("backup: %v", err)
	}

	out, _, err := runCommand(t, "list", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "TIMESTAMP") || !strings.Contains(out, "2") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestHistory_RecordsRuns(t *testing.T) {
	fake := brewcli.NewFake()
	fake.Formulae = []string{"git"}
	// share one HOME across backup, restore, and history
	home := t.TempDir()
	withFakeBrew(t, fake)
	t.Setenv("HOME", home)

	file := filepath.Join(t.TempDir(), "apps.json")
	if _, _, err := runCommand(t, "backup", "--file", file); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if _, _, err := runCommand(t, "restore", "--file", file, "--yes", "--skip-installed"); err != nil {
		t.Fatalf("restore: %v", err)
	}

	out, _, err := runCommand(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "backup") || !strings.Contains(out, "restore") {
		t.Fatalf("history should list both runs: %s", out)
	}
}
