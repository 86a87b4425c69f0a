package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"remove", "delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task; later tasks move up one number" }
func (c *RmCmd) Usage() string     { return "tasker rm <n>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		return reportTaskRefError(errOut, err)
	}

	removed, err := svc.DeleteTask(ctx, num-1)
	if err != nil {
		return reportStoreError(errOut, num, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "removed: %s\n", output.NormalizeDescription(removed.Description))
	}
	return exitcode.Success
}
