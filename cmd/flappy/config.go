package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var flagShowDefault bool

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the effective configuration",
	Long: `Print the YAML configuration a variant would run with, after applying
the search order: --config path, ~/.flappy/configs/<variant>.yaml,
./configs/<variant>.yaml, then the built-in defaults.

The output is a valid config file and can be edited and passed back
with --config.

Examples:
  flappy config
  flappy config flappy-lite > ~/.flappy/configs/flappy-lite.yaml
  flappy config --default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configCmd.Flags().BoolVar(&flagShowDefault, "default", false, "Print the built-in default instead")
}

func runConfig(cmd *cobra.Command, args []string) error {
	variant := config.VariantClassic
	if len(args) > 0 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q, run 'flappy list' to see available variants", variant)
	}

	out := cmd.OutOrStdout()
	if flagShowDefault {
		_, err := out.Write(config.GetDefaultYAML(variant))
		return err
	}

	cfg, err := config.Load(variant, flagConfig)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		logger.Warn("configuration is invalid, the game will use defaults", "error", err)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
