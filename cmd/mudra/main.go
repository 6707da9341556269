// Package main implements the mudra CLI: a webcam hand gesture overlay.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/logger"
	"github.com/ayusman/mudra/internal/version"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "mudra",
		Short: "Webcam hand gesture recognition with an on-screen overlay",
		Long: `mudra watches a webcam, recognizes six static hand gestures and draws
an icon and label for the one currently shown.

Gestures, by display priority:
  THUMBS_UP > THUMBS_DOWN > ONE_FINGER > FIST > PEACE > STOP

Configuration is read from ~/.mudra/config.yaml and MUDRA_* environment variables.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "config file path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	version.AttachCobraVersionCommand(root)

	return root
}

// loadConfig reads the configuration and applies the log level.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	lvl, ok := logger.ParseLogLevel(level)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	logger.SetLevel(lvl)

	return cfg, nil
}
