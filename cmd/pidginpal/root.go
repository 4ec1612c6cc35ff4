package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"pidginpal-hq/relay/pkg/cli"
	"pidginpal-hq/relay/pkg/config"

	"github.com/spf13/cobra"
)

// defaultConfigFile is read when --config is not given. A missing default
// file is not an error; the relay then runs on defaults and environment
// overrides.
const defaultConfigFile = "config.yaml"

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pidginpal",
	Short: "PidginPal relay - chat backend for the PidginPal app",
	Long: `PidginPal relay forwards chat messages from the PidginPal web app to an
OpenAI-compatible chat completions API.

Every message is sent with the PidginPal persona as the system prompt. When
the provider is out of quota or rate limited, the relay answers with a canned
in-character reply so the chat keeps working.

Configuration is read from a YAML file and PIDGINPAL_* environment variables.
The provider credential can also come from OPENAI_API_KEY.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}

// loadConfig loads path with environment overrides. When the file does not
// exist and the path was not set explicitly, defaults are used instead.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// loadConfigFor loads the configuration named by the --config flag of cmd.
func loadConfigFor(cmd *cobra.Command) (*config.Config, error) {
	return loadConfig(cfgFile, cmd.Flags().Changed("config"))
}
