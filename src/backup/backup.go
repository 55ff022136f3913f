package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"brew-backup/src/brewcli"
	"brew-backup/src/manifest"
)

// Export captures the installed formula and cask lists and writes them to a
// single manifest file at path. Both listings must succeed before the file
// is created; a brew failure aborts the export without touching disk.
func Export(client brewcli.Client, path string) (manifest.Manifest, error) {
	m, err := Collect(client)
	if err != nil {
		return manifest.Manifest{}, err
	}
	if err := m.Save(path); err != nil {
		return manifest.Manifest{}, err
	}
	return m, nil
}

// Snapshot exports the installed package lists into a timestamped snapshot
// directory under root/manifests/<timestamp>/ and writes metadata plus
// checksums. Returns the snapshot directory path and the captured manifest.
func Snapshot(client brewcli.Client, root string, now time.Time) (string, manifest.Manifest, error) {
	m, err := Collect(client)
	if err != nil {
		return "", manifest.Manifest{}, err
	}

	ts := now.UTC().Format("20060102T150405Z")
	snapDir := filepath.Join(root, "manifests", ts)
	if err := os.MkdirAll(snapDir, 0o755); err != nil {
		return "", manifest.Manifest{}, err
	}

	if err := m.Save(filepath.Join(snapDir, "packages.json")); err != nil {
		return "", manifest.Manifest{}, err
	}
	meta := Metadata{
		Type:      "packages",
		CreatedAt: now.UTC(),
		Formulae:  len(m.Formulae),
		Casks:     len(m.Casks),
	}
	if err := writeJSON(filepath.Join(snapDir, "manifest.json"), meta); err != nil {
		return "", manifest.Manifest{}, err
	}
	if err := writeChecksums(snapDir, []string{"packages.json", "manifest.json"}); err != nil {
		return "", manifest.Manifest{}, err
	}
	return snapDir, m, nil
}

// Collect captures the current formula and cask listings into a manifest
// without writing anything to disk.
func Collect(client brewcli.Client) (manifest.Manifest, error) {
	formulae, err := client.ListFormulae()
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("list formulae: %w", err)
	}
	casks, err := client.ListCasks()
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("list casks: %w", err)
	}
	sort.Strings(formulae)
	sort.Strings(casks)
	return manifest.New(formulae, casks), nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeChecksums(dir string, files []string) error {
	out, err := os.Create(filepath.Join(dir, "checksums.txt"))
	if err != nil {
		return err
	}
	defer out.Close()
	for _, name := range files {
		sum, err := sha256File(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%s  %s\n", sum, name); err != nil {
			return err
		}
	}
	return nil
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
