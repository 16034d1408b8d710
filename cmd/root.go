// Package cmd is the command line of the cycle engine.
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"vcrc/config"
	"vcrc/failure"
)

var rootFlags struct {
	config   string
	logLevel string
}

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "vcrc",
	Short: "Vapor compression refrigeration cycle calculator",
	Long: "vcrc builds vapor compression cycles of twelve topologies, reports their\n" +
		"state points and performance and breaks the compressor work down into\n" +
		"entropy losses per component.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("config") {
			loaded, err := config.Load(rootFlags.config)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.LoadOrDefault(rootFlags.config)
		}
		level := cfg.Log.Level
		if rootFlags.logLevel != "" {
			parsed, err := log.ParseLevel(rootFlags.logLevel)
			if err != nil {
				return failure.Configf("--log-level: %v", err)
			}
			level = parsed
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.config, "config", config.DefaultPath, "ini configuration file")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(topologiesCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
