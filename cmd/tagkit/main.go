package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tagkit/internal/config"
	"github.com/vango-dev/tagkit/internal/errors"
	"github.com/vango-dev/tagkit/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the global flags and state shared by the commands.
type app struct {
	verbosity  int
	configPath string

	cfg         *config.Config
	closeLogger func()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tagkit",
		Short: "Build HTML tags from the command line",
		Long: `tagkit builds HTML tags the way template helpers do.

It classifies tags into self-closing, multi-line and single-line shapes,
normalizes attributes, merges class lists and can serve a preview API.

Examples:
  tagkit render div "Hello" --class card --attr id=main
  tagkit classes "btn" "btn-primary btn"
  tagkit serve --watch`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.closeLogger = logging.SetupLogger(a.verbosity, cmd.ErrOrStderr())
			slog.SetDefault(logging.Slog("tagkit"))
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLogger != nil {
				a.closeLogger()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ./tagkit.toml, then $XDG_CONFIG_HOME/tagkit/tagkit.toml)")

	rootCmd.AddCommand(
		renderCmd(a),
		classesCmd(a),
		attrsCmd(a),
		tablesCmd(a),
		serveCmd(a),
		configCmd(a),
		explainCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig loads the configuration once per invocation.
func (a *app) loadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path() != "" {
		log.Debug().Str("path", cfg.Path()).Msg("Loaded configuration")
	}
	a.cfg = cfg
	return cfg, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
