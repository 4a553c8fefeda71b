package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/gamemanager/internal/config"
)

// ConfigCmd manages the configuration file
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a configuration file with the defaults"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

// ConfigInitCmd writes the default configuration
type ConfigInitCmd struct{}

func (c *ConfigInitCmd) Run(globals *GlobalFlags) error {
	if err := config.Default().Save(globals.Config); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", globals.Config)
	return nil
}

// ConfigShowCmd prints the configuration after defaults and overrides
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(globals *GlobalFlags) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	return showConfig(cfg, os.Stdout)
}

func showConfig(cfg *config.Config, w io.Writer) error {
	_, err := w.Write(cfg.Bytes())
	return err
}
