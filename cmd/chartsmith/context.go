package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"chartsmith/internal/config"
	"chartsmith/internal/services"
)

type overrideFlags struct {
	input     string
	output    string
	converter string
}

type commandContext struct {
	configFlag *string
	overrides  *overrideFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, overrides *overrideFlags) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		overrides:  overrides,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", path, err)
			return
		}
		if c.overrides != nil {
			if err := cfg.ApplyOverrides(config.Overrides{
				InputDir:     c.overrides.input,
				OutputDir:    c.overrides.output,
				ConverterDir: c.overrides.converter,
			}); err != nil {
				c.configErr = services.Wrap(services.ErrValidation, "config", "apply flags", "", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrFilesystem, "config", "create directories", "", err)
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
