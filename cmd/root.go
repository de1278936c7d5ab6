package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openstudio-standards/osstd/standards"
	_ "github.com/openstudio-standards/osstd/standards/templates"
)

// Environment variables read when the matching flag is not set. A .env file
// in the working directory is loaded first.
const (
	envTemplate   = "OSSTD_TEMPLATE"
	envDataDir    = "OSSTD_DATA_DIR"
	envCustom     = "OSSTD_CUSTOM"
	envOpenStudio = "OSSTD_OPENSTUDIO"
	envEnergyPlus = "OSSTD_ENERGYPLUS"
)

var (
	logLevel     string // Log verbosity level
	dataDir      string // Directory of standards tables searched before the embedded ones
	template     string // Template the rules are applied for
	custom       string // Utility program customization
	outputFormat string // table or json
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:          "osstd",
	Short:        "Building energy standards rules, data and prototype simulations",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		flagFromEnv(cmd, "template", envTemplate, &template)
		flagFromEnv(cmd, "data-dir", envDataDir, &dataDir)
		flagFromEnv(cmd, "custom", envCustom, &custom)

		if outputFormat != formatTable && outputFormat != formatJSON {
			return fmt.Errorf("invalid output format %q; valid: %s, %s", outputFormat, formatTable, formatJSON)
		}
		return nil
	},
}

// flagFromEnv sets *dst from the environment unless the flag was given.
func flagFromEnv(cmd *cobra.Command, flag, env string, dst *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok {
		*dst = v
	}
}

// newStandard builds the Standard selected by the persistent flags.
func newStandard() (*standards.Standard, error) {
	if template == "" {
		return nil, fmt.Errorf("no template given; use --template or %s (registered: %s)", envTemplate, strings.Join(standards.Templates(), ", "))
	}
	opts := []standards.Option{standards.WithCustom(custom)}
	if dataDir != "" {
		d, err := standards.OverlayData(os.DirFS(dataDir), ".")
		if err != nil {
			return nil, fmt.Errorf("loading --data-dir %s: %w", dataDir, err)
		}
		opts = append(opts, standards.WithData(d))
	}
	return standards.NewStandard(template, opts...)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up the persistent flags; subcommands register themselves in
// their own files.
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory of JSON/YAML standards tables searched before the embedded data")
	rootCmd.PersistentFlags().StringVar(&template, "template", "", "Template, e.g. 90.1-2013 or NECB2011")
	rootCmd.PersistentFlags().StringVar(&custom, "custom", "", "Utility program customization, e.g. \"Xcel Energy CO EDA\"")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "Output format (table, json)")
}
