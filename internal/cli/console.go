package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Console is the sink for user-facing output. Flows print through it rather
// than writing to os.Stdout directly, so tests can capture exactly what the
// user would see.
type Console struct {
	out io.Writer
}

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// DefaultConsole returns a Console writing to stdout.
func DefaultConsole() *Console {
	return NewConsole(os.Stdout)
}

// Out exposes the underlying writer for components that render directly,
// such as table writers and spinners.
func (c *Console) Out() io.Writer {
	return c.out
}

// Printf writes formatted text without decoration.
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a plain line.
func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

// Headerf writes a highlighted section header line.
func (c *Console) Headerf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s\n", text.FgHiCyan.Sprint(fmt.Sprintf(format, args...)))
}

// Stepf writes a progress line for a step in flight.
func (c *Console) Stepf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s\n", text.FgCyan.Sprint("[*] "+fmt.Sprintf(format, args...)))
}

// Successf writes a success line.
func (c *Console) Successf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", text.FgGreen.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Warnf writes a warning line.
func (c *Console) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", text.FgYellow.Sprint("⚠"), text.FgYellow.Sprint(fmt.Sprintf(format, args...)))
}

// Failf writes a failed-check line. Unlike Errorf this reports an outcome,
// not a fault of the tool itself.
func (c *Console) Failf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", text.FgRed.Sprint("✗"), fmt.Sprintf(format, args...))
}

// Errorf writes an error line.
func (c *Console) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s\n", text.FgRed.Sprint("Error: "+fmt.Sprintf(format, args...)))
}
