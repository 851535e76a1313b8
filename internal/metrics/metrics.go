// Package metrics define las métricas Prometheus de dominio.
// Las métricas HTTP viven en internal/http.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TokenChecks cuenta chequeos de validez de tokens por resultado.
	// result: valid|needs_auth
	TokenChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "syncschwab_token_checks_total",
		Help: "Chequeos de validez de refresh tokens por resultado",
	}, []string{"result"})

	// CacheRefreshes cuenta corridas del refresher de cache de cuentas.
	// result: ok|error
	CacheRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "syncschwab_cache_refreshes_total",
		Help: "Corridas del refresher del cache de cuentas por resultado",
	}, []string{"result"})

	// CacheRefreshDuration mide la duración de cada corrida del refresher.
	CacheRefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "syncschwab_cache_refresh_duration_seconds",
		Help:    "Duración de cada corrida del refresher",
		Buckets: prometheus.DefBuckets,
	})

	// Notifications cuenta notificaciones publicadas por severidad.
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "syncschwab_notifications_total",
		Help: "Notificaciones publicadas por severidad",
	}, []string{"severity"})

	// NotificationsDropped cuenta descartes por cola llena (drop-oldest).
	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syncschwab_notifications_dropped_total",
		Help: "Notificaciones descartadas por overflow de la cola",
	})
)
