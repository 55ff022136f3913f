package directory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"brew-backup/src/store"
)

// Backend implements store.Store over the filesystem layout
// <root>/manifests/<timestamp>/.
type Backend struct {
	Root string // absolute directory path
}

func New(root string) (*Backend, error) {
	if root == "" {
		return nil, errors.New("directory store root must not be empty")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}
	return &Backend{Root: root}, nil
}

func (b *Backend) List() ([]store.Entry, error) {
	base := filepath.Join(b.Root, "manifests")
	timestamps, err := readDirNames(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	entries := make([]store.Entry, 0, len(timestamps))
	for _, ts := range timestamps {
		entries = append(entries, store.Entry{Timestamp: ts, Path: filepath.Join(base, ts)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })
	return entries, nil
}

// Latest returns the newest snapshot. Timestamps sort lexicographically.
func (b *Backend) Latest() (store.Entry, error) {
	entries, err := b.List()
	if err != nil {
		return store.Entry{}, err
	}
	if len(entries) == 0 {
		return store.Entry{}, fmt.Errorf("no manifest snapshots found under %s", b.Root)
	}
	return entries[len(entries)-1], nil
}

// Resolve returns the snapshot for the given timestamp, or the latest one
// when version is empty.
func (b *Backend) Resolve(version string) (store.Entry, error) {
	if version == "" {
		return b.Latest()
	}
	path := filepath.Join(b.Root, "manifests", version)
	info, err := os.Stat(path)
	if err != nil {
		return store.Entry{}, fmt.Errorf("snapshot %s: %w", version, err)
	}
	if !info.IsDir() {
		return store.Entry{}, fmt.Errorf("snapshot %s is not a directory", version)
	}
	return store.Entry{Timestamp: version, Path: path}, nil
}

func readDirNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			name := e.Name()
			// skip hidden
			if strings.HasPrefix(name, ".") {
				continue
			}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
