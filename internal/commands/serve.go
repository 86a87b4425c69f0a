package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/app"
	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/logging"
	"tasker/internal/service"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
type ServeCmd struct {
	host string
	port string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the task list over HTTP" }
func (c *ServeCmd) Usage() string     { return "tasker serve [--host <host>] [--port <port>]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.host, "host", "", "")
	fs.StringVar(&c.port, "port", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	httpCfg := cfg.Settings.HTTP
	if c.host != "" {
		httpCfg.Host = c.host
	}
	if c.port != "" {
		httpCfg.Port = c.port
	}

	// The server logs at its environment's level, not the CLI's.
	logger := logging.New(errOut, cfg.Settings.Env)
	if err := app.ListenAndServeHTTP(ctx, httpCfg, cfg.Settings.Env, logger, svc); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ServerError
	}
	return exitcode.Success
}
