package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasker help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	WriteHelp(out, DefaultRegistry)
	return exitcode.Success
}

// WriteHelp prints usage for every command in r.
func WriteHelp(w io.Writer, r *Registry) {
	cmds := r.All()

	width := len("tasker")
	for _, cmd := range cmds {
		if n := len(cmd.Usage()); n > width {
			width = n
		}
	}

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %-*s  %s\n", width, "tasker", "List tasks")
	for _, cmd := range cmds {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (also: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, cmd.Usage(), synopsis)
	}
	fmt.Fprint(w, commonFlagsText)
}

const commonFlagsText = `
Task numbers are the ones shown by 'tasker list'.

Common flags:
  --config <dir>   Override config directory
  --file <path>    Override task store file
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
