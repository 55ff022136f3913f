package progress

import (
	"fmt"
	"io"
)

// Counter writes a single-line progress indicator for item-granular work,
// rewriting the line in place as items complete.
type Counter struct {
	out   io.Writer
	label string
	total int
	done  int
	width int
}

// NewCounter creates a Counter for total items. If out is nil all methods
// are no-ops.
func NewCounter(out io.Writer, label string, total int) *Counter {
	return &Counter{out: out, label: label, total: total}
}

// Step marks one item as started and redraws the line with its name.
func (c *Counter) Step(name string) {
	if c.out == nil {
		return
	}
	c.done++
	line := fmt.Sprintf("[%s] %d/%d %s", c.label, c.done, c.total, name)
	// pad over the previous, possibly longer, line
	if pad := c.width - len(line); pad > 0 {
		line += fmt.Sprintf("%*s", pad, "")
	}
	c.width = len(line)
	fmt.Fprintf(c.out, "\r%s", line)
}

// Done terminates the progress line.
func (c *Counter) Done() {
	if c.out == nil || c.width == 0 {
		return
	}
	fmt.Fprint(c.out, "\n")
}
