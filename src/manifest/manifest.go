// Package manifest defines the on-disk package manifest format: a JSON
// object with "formula" and "cask" arrays, matching what `brew bundle`-less
// exports have historically looked like. A bare JSON array is accepted on
// read and treated as a list of formulae.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"brew-backup/src/brewcli"
)

// Manifest records installed package identifiers for later restoration.
// Order is preserved: restore installs formulae first, then casks, each in
// listed order.
type Manifest struct {
	Formulae []string `json:"formula"`
	Casks    []string `json:"cask"`
}

// ErrMalformed wraps JSON syntax and shape problems so callers can tell a
// bad manifest apart from an unreadable file.
var ErrMalformed = errors.New("malformed manifest")

// New builds a manifest from listing output.
func New(formulae, casks []string) Manifest {
	return Manifest{
		Formulae: append([]string(nil), formulae...),
		Casks:    append([]string(nil), casks...),
	}
}

// Entries returns the install order for a restore run.
func (m Manifest) Entries() []brewcli.Package {
	out := make([]brewcli.Package, 0, len(m.Formulae)+len(m.Casks))
	for _, name := range m.Formulae {
		out = append(out, brewcli.Package{Name: name, Kind: brewcli.KindFormula})
	}
	for _, name := range m.Casks {
		out = append(out, brewcli.Package{Name: name, Kind: brewcli.KindCask})
	}
	return out
}

// Count returns the total number of entries.
func (m Manifest) Count() int {
	return len(m.Formulae) + len(m.Casks)
}

// Validate checks the manifest invariant: every identifier is a non-empty
// string. Duplicates are tolerated.
func (m Manifest) Validate() error {
	for _, name := range m.Formulae {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty formula name", ErrMalformed)
		}
	}
	for _, name := range m.Casks {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty cask name", ErrMalformed)
		}
	}
	return nil
}

// Load reads and parses a manifest file. File errors and malformed JSON are
// reported as distinct conditions; no install may be attempted after either.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes. Accepts the keyed object form and, for
// compatibility with hand-written lists, a bare JSON array of formulae.
func Parse(data []byte) (Manifest, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return Manifest{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		m := Manifest{Formulae: names}
		if err := m.Validate(); err != nil {
			return Manifest{}, err
		}
		return m, nil
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Save writes the manifest to path as indented JSON, overwriting any
// existing file. The path must be non-empty; callers are expected to have
// captured the package lists successfully before calling Save so a brew
// failure never leaves a partial file behind.
func (m Manifest) Save(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("manifest destination path must not be empty")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return f.Close()
}
