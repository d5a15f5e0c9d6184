package bootstrap

import (
	"os"
	"time"

	"swarachna-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type AuditEvent struct {
	Action string
	Fields map[string]any
}

type AuditLogger interface {
	Log(event AuditEvent)
}

type NopAuditLogger struct{}

func (NopAuditLogger) Log(AuditEvent) {}

type zapAuditLogger struct {
	logger *zap.Logger
}

// NewStdoutAuditLogger writes one JSON line per event to stdout, independent
// of the process log level.
func NewStdoutAuditLogger() AuditLogger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.Lock(zapcore.AddSync(os.Stdout)),
		zapcore.InfoLevel,
	)
	return NewAuditLogger(zap.New(core).Named("audit"))
}

func NewAuditLogger(l *zap.Logger) AuditLogger {
	return &zapAuditLogger{logger: l}
}

func (a *zapAuditLogger) Log(event AuditEvent) {
	fields := make([]zap.Field, 0, len(event.Fields))
	for k, v := range event.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	a.logger.Info(event.Action, fields...)
}

// AuditRequests records every finished request. Health checks are skipped.
func AuditRequests(audit AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.FullPath() == "/health" {
			return
		}
		audit.Log(AuditEvent{
			Action: "http.request",
			Fields: map[string]any{
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"route":      c.FullPath(),
				"status":     c.Writer.Status(),
				"latency_ms": time.Since(start).Milliseconds(),
				"client_ip":  c.ClientIP(),
				"request_id": c.GetString(middleware.RequestIDHeader),
				"session_id": c.GetString("session_id"),
			},
		})
	}
}
