package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd implements the config command.
type ConfigCmd struct{}

// configView is the document printed by `tasker config`.
type configView struct {
	ConfigDir string          `toml:"config_dir"`
	StorePath string          `toml:"store_path"`
	Settings  config.Settings `toml:"settings"`
}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Print the effective configuration as TOML" }
func (c *ConfigCmd) Usage() string     { return "tasker config" }
func (c *ConfigCmd) NeedsStore() bool  { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	view := configView{
		ConfigDir: cfg.Dir,
		StorePath: cfg.StorePath(),
		Settings:  cfg.Settings,
	}
	if err := toml.NewEncoder(out).Encode(view); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
