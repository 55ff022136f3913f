package safety

// Options carries the global safety flags shared by all commands.
type Options struct {
	// DryRun shows planned actions without making changes.
	DryRun bool
	// Yes assumes "yes" to prompts and runs non-interactively.
	Yes bool
	// Force allows potentially dangerous operations.
	Force bool
}
