package brewcli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RequiredVersion defines the minimum Homebrew release we support.
const RequiredVersion = "4.0.0"

// wellKnownPaths are checked when brew is not on PATH. Apple Silicon
// installs under /opt/homebrew, Intel Macs and Linuxbrew elsewhere.
var wellKnownPaths = []string{
	"/opt/homebrew/bin/brew",
	"/usr/local/bin/brew",
	"/home/linuxbrew/.linuxbrew/bin/brew",
}

// BinaryInfo describes a detected brew CLI binary.
type BinaryInfo struct {
	Path    string
	Version string
}

var versionRegexp = regexp.MustCompile(`Homebrew\s+([0-9]+\.[0-9]+\.[0-9]+(?:-[A-Za-z0-9.]+)?)`)

// Detect locates the brew binary, queries its version, and returns the
// gathered metadata. A non-empty path (typically the brew.path config key)
// overrides PATH lookup. The context bounds the version subprocess.
func Detect(ctx context.Context, path string) (BinaryInfo, error) {
	exe, err := findBinary(path)
	if err != nil {
		return BinaryInfo{}, err
	}
	ver, err := queryVersion(ctx, exe)
	if err != nil {
		return BinaryInfo{}, err
	}
	return BinaryInfo{Path: exe, Version: ver}, nil
}

func findBinary(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("configured brew binary %s: %w", override, err)
		}
		return override, nil
	}
	if exe, err := exec.LookPath("brew"); err == nil {
		return exe, nil
	}
	for _, p := range wellKnownPaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", errors.New("brew binary not found on PATH or in well-known locations")
}

// IsCompatible reports whether the provided version satisfies the minimum
// supported Homebrew release.
func IsCompatible(version string) bool {
	left, ok := parseSemVersion(version)
	if !ok {
		return false
	}
	right, ok := parseSemVersion(RequiredVersion)
	if !ok {
		return false
	}
	return compareSemVersion(left, right) >= 0
}

// queryVersion executes `brew --version` and parses the semantic version
// from its output.
func queryVersion(ctx context.Context, exe string) (string, error) {
	// Guard against commands that hang by applying a short timeout.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, exe, "--version")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("brew: version command failed: %w", err)
	}
	version, err := parseVersion(strings.NewReader(string(out)))
	if err != nil {
		return "", err
	}
	if version == "" {
		return "", errors.New("brew: could not parse version output")
	}
	return version, nil
}

func parseVersion(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if matches := versionRegexp.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return matches[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("brew: read version output: %w", err)
	}
	return "", nil
}

// ExtractVersion derives the Homebrew version string from the supplied
// command output. It is primarily exposed for testing.
func ExtractVersion(output string) (string, error) {
	return parseVersion(strings.NewReader(output))
}

type semVersion struct {
	major int
	minor int
	patch int
	pre   string
}

func parseSemVersion(s string) (semVersion, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return semVersion{}, false
	}
	parts := strings.SplitN(s, "-", 2)
	nums := strings.Split(parts[0], ".")
	if len(nums) != 3 {
		return semVersion{}, false
	}
	major, err := strconv.Atoi(nums[0])
	if err != nil {
		return semVersion{}, false
	}
	minor, err := strconv.Atoi(nums[1])
	if err != nil {
		return semVersion{}, false
	}
	patch, err := strconv.Atoi(nums[2])
	if err != nil {
		return semVersion{}, false
	}
	var pre string
	if len(parts) == 2 {
		pre = parts[1]
	}
	return semVersion{major: major, minor: minor, patch: patch, pre: pre}, true
}

func compareSemVersion(a, b semVersion) int {
	switch {
	case a.major != b.major:
		if a.major > b.major {
			return 1
		}
		return -1
	case a.minor != b.minor:
		if a.minor > b.minor {
			return 1
		}
		return -1
	case a.patch != b.patch:
		if a.patch > b.patch {
			return 1
		}
		return -1
	}
	if a.pre == b.pre {
		return 0
	}
	if a.pre == "" {
		return 1
	}
	if b.pre == "" {
		return -1
	}
	return strings.Compare(a.pre, b.pre)
}
