// Package http arma el server y la instrumentación de la API.
package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/observability/logger"
)

// AccessLog loguea cada request con el logger del servicio.
func AccessLog(next http.Handler) http.Handler {
	log := logger.Named("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
