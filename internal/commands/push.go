package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

// RemoteFactory creates the Google Tasks client used by push.
// Set by main; tests replace it with a fake.
var RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
}

// SetListName sets the --list flag (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy local tasks to a Google Tasks list" }
func (c *PushCmd) Usage() string     { return "tasker push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if RemoteFactory == nil {
		fmt.Fprintln(errOut, "error: remote not configured")
		return exitcode.RemoteError
	}

	local, err := svc.ListTasks(ctx)
	if err != nil {
		return reportStoreError(errOut, 0, err)
	}

	remote, err := RemoteFactory(ctx, cfg)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	listName := c.listName
	if listName == "" {
		listName = cfg.Settings.Google.List
	}

	var list service.TaskList
	if strings.TrimSpace(listName) == "" {
		list, err = remote.DefaultList(ctx)
	} else {
		list, err = remote.ResolveList(ctx, listName)
	}
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	existing, err := remote.ListTasks(ctx, list.ID)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	seen := make(map[string]bool, len(existing))
	for _, task := range existing {
		seen[strings.TrimSpace(task.Title)] = true
	}

	logger := zerolog.Ctx(ctx)
	pushed, skipped := 0, 0
	for _, task := range local {
		title := strings.TrimSpace(task.Description)
		if title == "" || seen[title] {
			skipped++
			continue
		}
		if err := remote.CreateTask(ctx, list.ID, title, task.Done); err != nil {
			return reportRemoteError(errOut, err)
		}
		seen[title] = true
		pushed++

		logger.Debug().
			Str("list", list.Title).
			Str("title", title).
			Bool("done", task.Done).
			Msg("pushed task")
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d, skipped %d\n", pushed, skipped)
	}
	return exitcode.Success
}

// reportRemoteError prints a Google Tasks failure and returns its exit code.
func reportRemoteError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrListNotFound), errors.Is(err, service.ErrAmbiguousList):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrNotAuthenticated):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: remote error: %v\n", err)
		return exitcode.RemoteError
	}
}
