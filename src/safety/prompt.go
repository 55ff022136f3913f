package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks the user before brew-backup changes anything on the system,
// typically ahead of a batch of install or uninstall calls.
//   - Yes answers the prompt affirmatively without asking.
//   - DryRun declines without asking; the command has already printed its
//     preview and must not act.
// Anything other than "y" or "yes" counts as a decline.
func Confirm(opts Options, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.DryRun {
		return false, nil
	}
	if opts.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes", nil
}
