package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultShutdownTimeout = 15 * time.Second

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Serve runs r until ctx is cancelled and then drains in-flight requests. It
// blocks until the server has stopped.
func Serve(ctx context.Context, r *gin.Engine, cfg ServerConfig, audit AuditLogger) error {
	if audit == nil {
		audit = NopAuditLogger{}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		audit.Log(AuditEvent{Action: "server.start", Fields: map[string]any{"addr": srv.Addr}})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			audit.Log(AuditEvent{Action: "server.failed", Fields: map[string]any{"error": err.Error()}})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	audit.Log(AuditEvent{Action: "server.shutdown"})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	audit.Log(AuditEvent{Action: "server.stopped"})
	return nil
}
