package error

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	bundleServerContext "github.com/Motmedel/bundle_server/pkg/context"
)

func LogError(ctx context.Context, message string, err error, logger *slog.Logger, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(bundleServerContext.WithError(ctx, err), message, args...)
}

func LogWarning(ctx context.Context, message string, err error, logger *slog.Logger, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(bundleServerContext.WithError(ctx, err), message, args...)
}

func LogFatalWithExitCode(ctx context.Context, message string, err error, logger *slog.Logger, exitCode int, args ...any) {
	LogError(ctx, message, err, logger, args...)
	os.Exit(exitCode)
}

func LogFatalWithExitingMessage(ctx context.Context, message string, err error, logger *slog.Logger, args ...any) {
	LogFatalWithExitCode(ctx, fmt.Sprintf("%s Exiting.", message), err, logger, 1, args...)
}
