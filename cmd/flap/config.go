package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flap/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration flap would play with, as YAML, after
applying the config file, --difficulty and --db.

Save the output to ~/.flap/config.yaml and edit it to tune the game.

Examples:
  flap config
  flap config --difficulty hard
  flap config --defaults > ~/.flap/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults, ignoring config files and flags")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		//nolint:errcheck // Best-effort write to stdout
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	//nolint:errcheck // Best-effort write to stdout
	os.Stdout.Write(data)
}
