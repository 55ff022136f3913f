package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brew-backup/src/brewcli"
	"brew-backup/src/cli"
	"brew-backup/src/manifest"
)

// withFakeBrew points the CLI at an in-memory brew client and gives the test
// its own HOME so config and history land in a temp directory.
func withFakeBrew(t *testing.T, fake *brewcli.FakeClient) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetDetect := cli.SetBrewDetectorForTest(func(context.Context, string) (brewcli.BinaryInfo, error) {
		return brewcli.BinaryInfo{Path: "/opt/homebrew/bin/brew", Version: "4.3.0"}, nil
	})
	t.Cleanup(resetDetect)
	resetClient := cli.SetBrewClientForTest(func(brewcli.BinaryInfo) brewcli.Client { return fake })
	t.Cleanup(resetClient)
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errBuf)
	cmd.SetArgs(args)
	_, err := cmd.ExecuteC()
	return out.String(), errBuf.String(), err
}

func runCommandWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errBuf bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errBuf)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	_, err := cmd.ExecuteC()
	return out.String(), errBuf.String(), err
}

func TestBackupThenRestore_RoundTrip(t *testing.T) {
	fake := brewcli.NewFake()
	fake.Formulae = []string{"git", "wget"}
	fake.Casks = []string{"firefox"}
	withFakeBrew(t, fake)

	file := filepath.Join(t.TempDir(), "apps.json")
	out, _, err := runCommand(t, "backup", "--file", file)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !strings.Contains(out, "Exported 2 formulae and 1 casks") {
		t.Fatalf("unexpected backup output: %s", out)
	}

	// restore into an empty installation
	restoreFake := brewcli.NewFake()
	resetClient := cli.SetBrewClientForTest(func(brewcli.BinaryInfo) brewcli.Client { return restoreFake })
	t.Cleanup(resetClient)

	out, _, err = runCommand(t, "restore", "--file", file, "--yes")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.Contains(out, "installed=3 failed=0 skipped=0") {
		t.Fatalf("unexpected restore output: %s", out)
	}

	// one install invocation per listed identifier: sorted formulae first,
	// then casks, matching the exported manifest order
	wantOrder := []string{"git", "wget", "firefox"}
	if len(restoreFake.InstallCalls) != len(wantOrder) {
		t.Fatalf("got %d install calls, want %d", len(restoreFake.InstallCalls), len(wantOrder))
	}
	for i, name := range wantOrder {
		if restoreFake.InstallCalls[i].Name != name {
			t.Fatalf("install call %d = %s, want %s", i, restoreFake.InstallCalls[i].Name, name)
		}
	}
}

func TestBackup_RequiresDestination(t *testing.T) {
	fake := brewcli.NewFake()
	withFakeBrew(t, fake)

	_, _, err := runCommand(t, "backup")
	if err == nil {
		t.Fatalf("expected error when neither --file nor --target is given")
	}
}

func TestBackup_ListFailure_NoFile(t *testing.T) {
	fake := brewcli.NewFake()
	fake.ListErr = &brewcli.CommandError{Args: []string{"list", "--formula"}, ExitCode: 1, Stderr: "brew broke"}
	withFakeBrew(t, fake)

	file := filepath.Join(t.TempDir(), "apps.json")
	_, _, err := runCommand(t, "backup", "--file", file)
	if err == nil {
		t.Fatalf("expected backup to fail")
	}
	if _, statErr := os.Stat(file); !os.IsNotExist(statErr) {
		t.Fatalf("failed backup must not create the manifest file")
	}
}

func TestRestore_InvalidJSON_NoInstalls(t *testing.T) {
	fake := brewcli.NewFake()
	withFakeBrew(t, fake)

	file := filepath.Join(t.TempDir(), "apps.json")
	if err := os.WriteFile(file, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, _, err := runCommand(t, "restore", "--file", file, "--yes")
	if err == nil {
		t.Fatalf("expected restore to fail on malformed JSON")
	}
	if len(fake.InstallCalls) != 0 {
		t.Fatalf("malformed manifest must abort with zero install invocations; got %d", len(fake.InstallCalls))
	}
}

func TestRestore_MissingFile(t *testing.T) {
	fake := brewcli.NewFake()
	withFakeBrew(t, fake)

	_, _, err := runCommand(t, "restore", "--file", filepath.Join(t.TempDir(), "nope.json"), "--yes")
	if err == nil {
		t.Fatalf("expected restore to fail on missing manifest")
	}
	if len(fake.InstallCalls) != 0 {
		t.Fatalf("missing manifest must not trigger installs")
	}
}

func TestRestore_DryRun_PreviewsOnly(t *testing.T) {
	fake := brewcli.NewFake()
	withFakeBrew(t, fake)

	file := filepath.Join(t.TempDir(), "apps.json")
	m := manifest.New([]string{"git"}, nil)
	if err := m.Save(file); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, _, err := runCommand(t, "restore", "--file", file, "--dry-run")
	if err != nil {
		t.Fatalf("dry-run restore: %v", err)
	}
	if !strings.Contains(out, "Restore preview") || !strings.Contains(out, "+ git") {
		t.Fatalf("expected preview output, got: %s", out)
	}
	if len(fake.InstallCalls) != 0 {
		t.Fatalf("dry-run must not install anything")
	}
}

func TestBackupSnapshot_ThenRestoreLatest(t *testing.T) {
	fake := brewcli.NewFake()
	fake.Formulae = []string{"git"}
	withFakeBrew(t, fake)

	root := t.TempDir()
	out, _, err := runCommand(t, "backup", "--target", "dir:"+root)
	if err != nil {
		t.Fatalf("backup snapshot: %v", err)
	}
	if !strings.Contains(out, "Created snapshot") {
		t.Fatalf("unexpected output: %s", out)
	}

	restoreFake := brewcli.NewFake()
	resetClient := cli.SetBrewClientForTest(func(brewcli.BinaryInfo) brewcli.Client { return restoreFake })
	t.Cleanup(resetClient)

	out, _, err = runCommand(t, "restore", "--target", "dir:"+root, "--yes")
	if err != nil {
		t.Fatalf("restore from snapshot: %v", err)
	}
	if !strings.Contains(out, "installed=1 failed=0 skipped=0") {
		t.Fatalf("unexpected restore output: %s", out)
	}
	if len(restoreFake.InstallCalls) != 1 || restoreFake.InstallCalls[0].Name != "git" {
		t.Fatalf("unexpected install calls: %+v", restoreFake.InstallCalls)
	}
}
