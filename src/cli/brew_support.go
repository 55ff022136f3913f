package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"brew-backup/src/brewcli"
	"brew-backup/src/config"
	"brew-backup/src/safety"
)

type brewDetectorFunc func(ctx context.Context, path string) (brewcli.BinaryInfo, error)

var detectBrewFn brewDetectorFunc = brewcli.Detect

type brewClientFunc func(info brewcli.BinaryInfo) brewcli.Client

var newBrewClientFn brewClientFunc = func(info brewcli.BinaryInfo) brewcli.Client {
	return brewcli.NewShellClient(info)
}

// checkBrewBinary locates brew and verifies its version, prompting when the
// detected release is older than the supported minimum.
func checkBrewBinary(cmd *cobra.Command, cfg *config.Config) (brewcli.BinaryInfo, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	info, err := detectBrewFn(ctx, cfg.Brew.Path)
	if err != nil {
		return brewcli.BinaryInfo{}, err
	}
	if brewcli.IsCompatible(info.Version) {
		return info, nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Homebrew %s detected; brew-backup requires %s or newer.\n", info.Version, brewcli.RequiredVersion)

	opts := getSafetyOptions(cmd)
	if opts.Yes || opts.Force {
		return info, nil
	}
	ok, err := safety.Confirm(opts, cmd.InOrStdin(), cmd.OutOrStdout(), "Proceed with unsupported Homebrew version?")
	if err != nil {
		return brewcli.BinaryInfo{}, err
	}
	if !ok {
		return brewcli.BinaryInfo{}, errors.New("aborted: Homebrew version is below supported minimum")
	}
	return info, nil
}

// brewClient loads the configuration, detects the brew binary, and returns
// a ready client. Most commands start here.
func brewClient(cmd *cobra.Command) (brewcli.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	info, err := checkBrewBinary(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	return newBrewClientFn(info), cfg, nil
}

// SetBrewDetectorForTest allows tests to stub binary detection. The
// returned function restores the previous detector.
func SetBrewDetectorForTest(fn brewDetectorFunc) func() {
	prev := detectBrewFn
	detectBrewFn = fn
	return func() { detectBrewFn = prev }
}

// SetBrewClientForTest allows tests to substitute a fake client.
func SetBrewClientForTest(fn brewClientFunc) func() {
	prev := newBrewClientFn
	newBrewClientFn = fn
	return func() { newBrewClientFn = prev }
}
