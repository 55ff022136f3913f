package version

// Version is the brew-backup release version. Overridden at build time via
// -ldflags "-X brew-backup/src/version.Version=...".
var Version = "0.1.0"
