package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerHttpErrors "github.com/Motmedel/bundle_server/pkg/http/errors"
	"github.com/Motmedel/bundle_server/pkg/server/server_config"
	"go.uber.org/multierr"
)

var ErrNilListener = errors.New("nil listener")

// Listen binds the address up front, so that an address already in use is reported before anything is printed.
func Listen(address string) (net.Listener, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, bundleServerErrors.New(fmt.Errorf("net listen: %w", err), address)
	}
	return listener, nil
}

func makeHttpServer(handler http.Handler, config *server_config.Config) *http.Server {
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		IdleTimeout:       config.IdleTimeout,
		// "OPTIONS *" goes to the handler too, so that it gets the same headers as any other response.
		DisableGeneralOptionsHandler: true,
	}

	if logger := config.ErrorLogger; logger != nil {
		httpServer.ErrorLog = slog.NewLogLogger(logger.Handler(), slog.LevelWarn)
	}

	return httpServer
}

// Serve serves the handler on the listener until the context is done, then shuts the server down, waiting at most
// the shutdown timeout for in-flight requests. It returns nil after a clean shutdown.
func Serve(ctx context.Context, listener net.Listener, handler http.Handler, options ...server_config.Option) error {
	if listener == nil {
		return bundleServerErrors.NewWithTrace(ErrNilListener)
	}
	if handler == nil {
		return multierr.Append(
			bundleServerErrors.NewWithTrace(bundleServerHttpErrors.ErrNilHandler),
			listener.Close(),
		)
	}

	config := server_config.New(options...)
	httpServer := makeHttpServer(handler, config)

	serveErrChannel := make(chan error, 1)
	go func() {
		serveErrChannel <- httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErrChannel:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return bundleServerErrors.New(fmt.Errorf("http server serve: %w", err), listener.Addr().String())
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.ShutdownTimeout)
	defer cancel()

	var err error
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		err = multierr.Append(
			bundleServerErrors.New(fmt.Errorf("http server shutdown: %w", shutdownErr)),
			httpServer.Close(),
		)
	}

	if serveErr := <-serveErrChannel; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		err = multierr.Append(err, bundleServerErrors.New(fmt.Errorf("http server serve: %w", serveErr)))
	}

	return err
}
