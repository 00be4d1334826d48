package main

import (
	"context"
	"errors"
	"io"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
)

type httpServer interface {
	Shutdown(ctx context.Context) error
}

type namedCloser struct {
	name   string
	closer io.Closer
}

// drainThenClose waits for in-flight requests before closing the stores they use.
func drainThenClose(server httpServer, closers ...namedCloser) gfshutdown.Operation {
	return func(ctx context.Context) error {
		zap.L().Info("shutting down http server")
		err := server.Shutdown(ctx)
		if err != nil {
			zap.L().Warn("http server did not drain cleanly", zap.Error(err))
		}

		for _, c := range closers {
			if closeErr := c.closer.Close(); closeErr != nil {
				zap.L().Error("failed to close "+c.name, zap.Error(closeErr))
				err = errors.Join(err, closeErr)
			}
		}
		return err
	}
}
