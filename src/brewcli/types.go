package brewcli

import (
	"fmt"
	"strings"
)

// Package kinds as Homebrew names them.
const (
	KindFormula = "formula"
	KindCask    = "cask"
)

// Package identifies a single Homebrew package.
type Package struct {
	Name string
	Kind string // formula|cask
}

func (p Package) String() string {
	if p.Kind == KindCask {
		return p.Name + " (cask)"
	}
	return p.Name
}

// Client is a narrow interface over the Homebrew CLI used by our app.
// Keep it small and focused on what we actually need so it stays mockable.
type Client interface {
	// Listing
	ListFormulae() ([]string, error)
	ListCasks() ([]string, error)

	// Discovery
	Search(query string) ([]string, error)

	// Mutation
	Install(pkg Package) error
	Uninstall(name string) error
}

// CommandError reports a brew invocation that exited non-zero. Stderr is
// trimmed and included so the user sees what brew itself complained about.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("brew %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}
