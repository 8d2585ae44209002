package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"oeplot/internal/config"
	"oeplot/internal/logging"
	"oeplot/internal/plotrun"
)

// globalFlags holds the persistent flag values shared by both binaries.
type globalFlags struct {
	config   string
	output   string
	format   string
	open     bool
	logLevel string
}

func (f *globalFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.config, "config", "c", "", "Configuration file path")
	flags.StringVarP(&f.output, "output", "o", "", "Directory that receives rendered figures")
	flags.StringVar(&f.format, "format", "", "Figure format (png or svg)")
	flags.BoolVar(&f.open, "open", false, "Open each figure with the configured viewer")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

type commandContext struct {
	flags *globalFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies flag overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		c.configPath, c.configExists = path, exists
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if output := strings.TrimSpace(c.flags.output); output != "" {
		expanded, err := config.ExpandPath(output)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if format := strings.TrimSpace(c.flags.format); format != "" {
		cfg.Render.Format = strings.ToLower(format)
	}
	if c.flags.open {
		cfg.Render.Open = true
	}
	if level := strings.TrimSpace(c.flags.logLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return nil
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, "")
}

// newRunner builds a plot runner whose status lines go to the command's
// stdout.
func (c *commandContext) newRunner(cmd *cobra.Command) (*plotrun.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	opts := plotrun.OptionsFromConfig(cfg)
	opts.Status = cmd.OutOrStdout()
	opts.Logger = logger
	return plotrun.New(opts)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func persistentPreRun(ctx *commandContext) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if shouldSkipConfig(cmd) {
			return nil
		}
		_, err := ctx.ensureConfig()
		return err
	}
}
