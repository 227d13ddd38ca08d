package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Motmedel/bundle_server/pkg/banner"
	"github.com/Motmedel/bundle_server/pkg/bundle/bootstrap"
	"github.com/Motmedel/bundle_server/pkg/bundle/responder"
	"github.com/Motmedel/bundle_server/pkg/bundle/responder/responder_config"
	"github.com/Motmedel/bundle_server/pkg/config"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerHttpLog "github.com/Motmedel/bundle_server/pkg/http/log"
	"github.com/Motmedel/bundle_server/pkg/http/middleware"
	bundleServerLog "github.com/Motmedel/bundle_server/pkg/log"
	bundleServerLogError "github.com/Motmedel/bundle_server/pkg/log/error"
	bundleServerOs "github.com/Motmedel/bundle_server/pkg/os"
	"github.com/Motmedel/bundle_server/pkg/server"
	"github.com/Motmedel/bundle_server/pkg/server/server_config"
	"github.com/joho/godotenv"
)

func makeLogger(level slog.Leveler, format string) (*slog.Logger, error) {
	handler, err := bundleServerLog.NewHandler(os.Stderr, format, level)
	if err != nil {
		return nil, fmt.Errorf("new handler: %w", err)
	}

	return bundleServerLog.New(
		handler,
		&bundleServerLog.ErrorContextExtractor{},
		&bundleServerHttpLog.HttpContextExtractor{},
	), nil
}

func main() {
	var configPath string
	var envFilePath string

	flag.StringVar(&configPath, "config", "", "Path to a TOML configuration file.")
	flag.StringVar(&envFilePath, "env-file", ".env", "Path to a dotenv file, loaded when it exists.")
	flag.Usage = func() {
		_, _ = fmt.Fprintf(
			flag.CommandLine.Output(),
			"Usage: %s [-config file.toml] [-env-file .env] [port|directory] [directory]\n",
			os.Args[0],
		)
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := context.Background()

	logger, _ := makeLogger(slog.LevelInfo, bundleServerLog.FormatText)
	slog.SetDefault(logger)

	if bundleServerOs.Exists(envFilePath) {
		if err := godotenv.Load(envFilePath); err != nil {
			bundleServerLogError.LogFatalWithExitingMessage(
				ctx,
				"An error occurred when loading the dotenv file.",
				bundleServerErrors.New(fmt.Errorf("godotenv load: %w", err), envFilePath),
				logger,
			)
		}
	}

	serverConfig, err := config.Load(configPath, flag.Args())
	if err != nil {
		bundleServerLogError.LogFatalWithExitingMessage(
			ctx,
			"An error occurred when loading the configuration.",
			fmt.Errorf("config load: %w", err),
			logger,
		)
	}

	level, err := bundleServerLog.ParseLevel(serverConfig.LogLevel)
	if err != nil {
		bundleServerLogError.LogFatalWithExitingMessage(ctx, "The log level is invalid.", err, logger)
	}

	logger, err = makeLogger(level, serverConfig.LogFormat)
	if err != nil {
		bundleServerLogError.LogFatalWithExitingMessage(ctx, "The log format is invalid.", err, logger)
	}
	slog.SetDefault(logger)

	created, err := bootstrap.EnsureRootDirectory(serverConfig.Directory)
	if err != nil {
		bundleServerLogError.LogFatalWithExitingMessage(
			ctx,
			"An error occurred when preparing the root directory.",
			fmt.Errorf("ensure root directory: %w", err),
			logger,
		)
	}
	if created {
		logger.WarnContext(
			ctx,
			"The root directory did not exist; it was created with a placeholder index page.",
			slog.String("directory", serverConfig.Directory),
		)
	}

	bundleResponder, err := responder.New(
		serverConfig.Directory,
		responder_config.WithDirectoryListing(serverConfig.DirectoryListing),
		responder_config.WithIndexFiles(serverConfig.IndexFiles...),
	)
	if err != nil {
		bundleServerLogError.LogFatalWithExitingMessage(
			ctx,
			"An error occurred when making the responder.",
			fmt.Errorf("responder new: %w", err),
			logger,
		)
	}

	listener, err := server.Listen(serverConfig.Address())
	if err != nil {
		bundleServerLogError.LogFatalWithExitingMessage(
			ctx,
			"An error occurred when binding the listen address.",
			fmt.Errorf("server listen: %w", err),
			logger,
		)
	}

	if err := banner.Print(os.Stdout, serverConfig.Directory, serverConfig.Url()); err != nil {
		bundleServerLogError.LogWarning(ctx, "An error occurred when printing the banner.", err, logger)
	}

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.InfoContext(
		ctx,
		"The server is listening.",
		slog.String("address", listener.Addr().String()),
		slog.String("directory", bundleResponder.RootDirectory),
		slog.Bool("directory_listing", serverConfig.DirectoryListing),
	)

	err = server.Serve(
		signalCtx,
		listener,
		middleware.New(bundleResponder, logger),
		server_config.WithShutdownTimeout(serverConfig.ShutdownTimeout()),
		server_config.WithErrorLogger(logger),
	)
	if err != nil {
		stop()
		bundleServerLogError.LogFatalWithExitingMessage(
			ctx,
			"An error occurred when serving.",
			fmt.Errorf("server serve: %w", err),
			logger,
		)
	}

	logger.InfoContext(ctx, "The server stopped.")
}
