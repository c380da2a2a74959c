package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/logging"
)

// setupLogging configures logging from the effective config and CLI flags,
// then stores the logger and a trace id in the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config, debug bool) logging.LogPathResult {
	loggingCfg := cfg.Logging
	ownsTerminal := cmd.Annotations[annotationLogToFile] != ""

	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		if !ownsTerminal {
			loggingCfg.File = ""
		}
	}
	if ownsTerminal {
		loggingCfg = loggingCfg.WithFileFallback()
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		withLog := *cfg
		withLog.Logging = loggingCfg
		if err := withLog.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && !ownsTerminal && isTerminal(os.Stderr) {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).
		Str("command", cmd.CommandPath()).
		Str("backend_url", cfg.Backend.URL).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	logging.FromContext(cmd.Context()).Debug().Str("command", cmd.CommandPath()).Msg("command finished")
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
