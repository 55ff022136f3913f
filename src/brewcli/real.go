package brewcli

import (
	"bytes"
	"log/slog"
	"os/exec"
	"strings"
)

// ShellClient implements Client by shelling out to the brew command.
// Invocations are synchronous; each call blocks until brew exits.
type ShellClient struct {
	bin BinaryInfo
}

// NewShellClient creates a client around a detected brew binary.
func NewShellClient(bin BinaryInfo) *ShellClient {
	return &ShellClient{bin: bin}
}

func (c *ShellClient) ListFormulae() ([]string, error) {
	out, err := c.run("list", "--formula")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func (c *ShellClient) ListCasks() ([]string, error) {
	out, err := c.run("list", "--cask")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func (c *ShellClient) Search(query string) ([]string, error) {
	out, err := c.run("search", query)
	if err != nil {
		return nil, err
	}
	// brew search prints section headers like "==> Formulae"; drop them.
	var results []string
	for _, line := range splitLines(out) {
		if strings.HasPrefix(line, "==>") {
			continue
		}
		results = append(results, line)
	}
	return results, nil
}

func (c *ShellClient) Install(pkg Package) error {
	args := []string{"install"}
	if pkg.Kind == KindCask {
		args = append(args, "--cask")
	}
	args = append(args, pkg.Name)
	_, err := c.run(args...)
	return err
}

func (c *ShellClient) Uninstall(name string) error {
	_, err := c.run("uninstall", "--force", name)
	return err
}

// run executes brew with the given arguments, capturing stdout and stderr
// separately. Non-zero exits are wrapped in a CommandError.
func (c *ShellClient) run(args ...string) (string, error) {
	slog.Debug("running brew", "path", c.bin.Path, "args", strings.Join(args, " "))
	cmd := exec.Command(c.bin.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return stdout.String(), &CommandError{
			Args:     args,
			ExitCode: code,
			Stderr:   strings.TrimSpace(stderr.String()),
		}
	}
	return stdout.String(), nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
