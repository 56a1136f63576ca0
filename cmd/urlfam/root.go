package main

import (
	"fmt"
	"io"

	"github.com/jetrtc/log"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	config     *Config
	logger     log.Logger
	*log.Loggable
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "urlfam",
		Short: "Build families of URLs",
		Long: `urlfam builds percent-encoded URLs from a scheme, host, optional port,
path segments and query pairs. A family file describes a shared base URL and
the members derived from it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("verbose") {
				config.Verbose, _ = cmd.Flags().GetBool("verbose")
			}
			a.config = config
			a.logger = newLogger(config.Verbose, cmd.ErrOrStderr())
			a.Loggable = log.NewLoggable(a.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "log to stderr")

	root.AddCommand(newBuildCmd(a))
	root.AddCommand(newFamilyCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

func newLogger(verbose bool, w io.Writer) log.Logger {
	if !verbose {
		w = io.Discard
	}
	return log.NewSugar(log.NewLogger(log.GoLogger(log.Debug, w, "", log.LstdFlags)))
}
