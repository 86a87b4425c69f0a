package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/export"
	"tasker/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
}

// SetFormat sets the --format flag (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOutput sets the --output flag (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.output = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write the task list as JSON, CSV or PDF" }
func (c *ExportCmd) Usage() string {
	return "tasker export [--format json|csv|pdf] [--output <path>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", string(export.FormatJSON), "")
	fs.StringVar(&c.output, "output", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format := c.format
	if format == "" {
		format = string(export.FormatJSON)
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportStoreError(errOut, 0, err)
	}

	if c.output == "" {
		if err := export.Write(out, f, tasks); err != nil {
			fmt.Fprintf(errOut, "error: export failed: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	file, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := export.Write(file, f, tasks); err != nil {
		file.Close()
		os.Remove(c.output)
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.UserError
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(tasks), c.output)
	}
	return exitcode.Success
}
