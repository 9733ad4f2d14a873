package controllers

import (
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// loadSettings resolves the configuration for a subcommand: the --config flag,
// else the first file found in the standard locations, else the defaults.
// Logging is configured from the loaded settings before returning; the caller
// must invoke the returned closeLog once the command is done.
func loadSettings(cmd *cobra.Command) (*entities.Settings, func(), error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
		}
		configPath = found
	}

	settings, err := entities.NewSettings(configPath, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	closeLog, err := configureLogging(settings.Log, verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	if configPath != "" {
		logger.Debugf("Using config file: %s", configPath)
	}
	return settings, closeLog, nil
}

// configureLogging applies the log level and tees output into a rotating file when configured.
// The returned function detaches and closes the file; it is safe to call more than once.
func configureLogging(settings entities.LogSettings, verbose bool, console io.Writer) (func(), error) {
	level := logger.InfoLevel
	if settings.Level != "" {
		parsed, err := logger.ParseLevel(settings.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log.level %q: %w", settings.Level, err)
		}
		level = parsed
	}
	if verbose || os.Getenv("DEBUG") == "true" {
		level = logger.DebugLevel
	}
	logger.SetLevel(level)

	if settings.Filename == "" {
		logger.SetOutput(console)
		return func() {}, nil
	}

	//nolint:exhaustruct // LocalTime and the internal fields keep their defaults
	file := &lumberjack.Logger{
		Filename:   settings.Filename,
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
		Compress:   settings.Compress,
	}
	logger.SetOutput(io.MultiWriter(console, file))
	return func() {
		logger.SetOutput(console)
		if err := file.Close(); err != nil {
			_, _ = fmt.Fprintf(console, "failed to close log file %s: %v\n", settings.Filename, err)
		}
	}, nil
}

// workingDirectory returns the process working directory, or "." when unavailable.
func workingDirectory() string {
	dir, err := os.Getwd()
	if err != nil {
		logger.Warnf("Failed to resolve working directory: %v", err)
		return "."
	}
	return dir
}
