// Package logging configures zerolog for the tagkit command and bridges the
// library's slog output into it.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// LogFileName is the log file name under the XDG state directory.
const LogFileName = "tagkit.log"

// LevelFor maps a -v count to a zerolog level.
func LevelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger for the given verbosity. Output
// goes to console (pretty printed) and to a log file under the XDG state
// directory. The returned function closes the log file.
func SetupLogger(verbosity int, console io.Writer) func() {
	zerolog.SetGlobalLevel(LevelFor(verbosity))

	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
	}}

	logFile, path, err := openLogFile()
	if err == nil {
		writers = append(writers, logFile)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")

	return func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}
}

// LogFilePath returns the path of the log file.
func LogFilePath() (string, error) {
	return xdg.StateFile(filepath.Join("tagkit", LogFileName))
}

func openLogFile() (*os.File, string, error) {
	path, err := LogFilePath()
	if err != nil {
		return nil, path, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, path, err
	}
	return f, path, nil
}

// GetLogger returns a logger tagged with the component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// Slog returns a slog.Logger writing through the global zerolog logger.
// Library packages that take a *slog.Logger are given this one by the CLI.
// Filtering is left to the zerolog global level.
func Slog(component string) *slog.Logger {
	logger := GetLogger(component)
	return slog.New(slogzerolog.Option{Level: slog.LevelDebug, Logger: &logger}.NewZerologHandler())
}
