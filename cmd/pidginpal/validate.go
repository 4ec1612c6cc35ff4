package main

import (
	"fmt"

	"pidginpal-hq/relay/pkg/cli"
	"pidginpal-hq/relay/pkg/config"

	"github.com/spf13/cobra"
)

var validateFlags struct {
	output string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load a configuration file with environment overrides applied, validate it,
and report warnings such as a missing provider credential.

The credential itself is never printed.

Examples:
  # Validate ./config.yaml
  pidginpal validate

  # Validate a specific file as JSON
  pidginpal validate --config /etc/pidginpal/config.yaml --output json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "text", "output format: text, json")
}

// validateReport summarises a loaded configuration.
type validateReport struct {
	Valid                bool     `json:"valid"`
	ListenAddress        string   `json:"listen_address"`
	ChatPath             string   `json:"chat_path"`
	Provider             string   `json:"provider"`
	BaseURL              string   `json:"base_url"`
	Model                string   `json:"model"`
	CredentialConfigured bool     `json:"credential_configured"`
	AllowedOrigins       []string `json:"allowed_origins"`
	Warnings             []string `json:"warnings"`
}

// Lines implements cli.TextLines.
func (r validateReport) Lines() []string {
	lines := []string{
		"✓ Configuration valid",
		fmt.Sprintf("  Listen:     %s%s", r.ListenAddress, r.ChatPath),
		fmt.Sprintf("  Provider:   %s (%s)", r.Provider, r.BaseURL),
		fmt.Sprintf("  Model:      %s", r.Model),
		"  Credential: " + credentialState(r.CredentialConfigured),
		fmt.Sprintf("  Origins:    %v", r.AllowedOrigins),
	}
	for _, w := range r.Warnings {
		lines = append(lines, "⚠ "+w)
	}
	return lines
}

func validateConfig(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.output)
	if err != nil {
		return err
	}

	cfg, err := loadConfigFor(cmd)
	if err != nil {
		return err
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), newValidateReport(cfg))
}

func newValidateReport(cfg *config.Config) validateReport {
	warnings := config.Warnings(cfg)
	if warnings == nil {
		warnings = []string{}
	}
	return validateReport{
		Valid:                true,
		ListenAddress:        cfg.Proxy.ListenAddress,
		ChatPath:             cfg.Proxy.ChatPath,
		Provider:             cfg.Provider.Name,
		BaseURL:              cfg.Provider.BaseURL,
		Model:                cfg.Provider.Model,
		CredentialConfigured: cfg.Provider.APIKey != "",
		AllowedOrigins:       cfg.Proxy.CORS.AllowedOrigins,
		Warnings:             warnings,
	}
}

func credentialState(configured bool) string {
	if configured {
		return "configured"
	}
	return "missing"
}
