// Package refresher corre el refresco periódico del cache de cuentas en
// background: reconstruye data/account_cache.json desde el registro y los
// estados de token, y levanta un flag que la GUI observa por polling.
//
// A lo sumo corre un refresher por proceso; se cancela por context (los
// fallos se loguean y se notifican, nunca tiran abajo el proceso).
package refresher

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/config"
	"github.com/leozex777/syncschwab/internal/metrics"
	"github.com/leozex777/syncschwab/internal/notify"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/registry"
	"github.com/leozex777/syncschwab/internal/status"
	"github.com/leozex777/syncschwab/internal/store"
)

// AccountCache es el documento data/account_cache.json: snapshot de
// cuentas + validez de tokens que la GUI usa como fuente de fallback
// (p. ej. el hash de la cuenta principal cuando el registro no lo tiene).
type AccountCache struct {
	UpdatedAt time.Time               `json:"updated_at"`
	Main      AccountEntry            `json:"main"`
	Clients   map[string]AccountEntry `json:"clients"`
}

// AccountEntry es el snapshot de una cuenta en el cache.
type AccountEntry struct {
	Name          string `json:"name,omitempty"`
	AccountHash   string `json:"account_hash,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	Enabled       bool   `json:"enabled,omitempty"`
	TokenValid    bool   `json:"token_valid"`
	Message       string `json:"message,omitempty"`
}

// Refresher reconstruye el cache de cuentas a intervalo fijo.
type Refresher struct {
	cfg      *config.Config
	registry *registry.Registry
	agg      *status.Aggregator
	queue    *notify.Queue
	settings *store.SettingsStore
	interval time.Duration
	updated  atomic.Bool
	log      *zap.Logger
}

func New(cfg *config.Config, reg *registry.Registry, agg *status.Aggregator, queue *notify.Queue, settings *store.SettingsStore) *Refresher {
	return &Refresher{
		cfg:      cfg,
		registry: reg,
		agg:      agg,
		queue:    queue,
		settings: settings,
		interval: cfg.RefreshInterval(),
		log:      logger.Named("refresher"),
	}
}

// Run corre el loop de refresco hasta que el context se cancele.
// Hace una corrida inmediata al arrancar.
func (r *Refresher) Run(ctx context.Context) error {
	r.log.Info("refresher started", zap.Duration("interval", r.interval))

	r.refreshOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}

// refreshOnce reconstruye y persiste el snapshot. Nunca retorna error:
// los fallos se loguean, se notifican y se cuenta la métrica.
func (r *Refresher) refreshOnce(ctx context.Context) {
	start := time.Now()
	err := r.rebuild(ctx)
	metrics.CacheRefreshDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CacheRefreshes.WithLabelValues("error").Inc()
		r.log.Error("cache refresh failed", zap.Error(err))
		if r.queue != nil && r.toastOnError(ctx) {
			r.queue.Error("Account cache refresh failed: " + err.Error())
		}
		return
	}

	metrics.CacheRefreshes.WithLabelValues("ok").Inc()
	r.updated.Store(true)
	r.log.Debug("account cache refreshed", zap.Duration("took", time.Since(start)))
}

// toastOnError consulta la preferencia de notificación del usuario.
// Sin settings store (o documento ilegible) prevalece el default: avisar.
func (r *Refresher) toastOnError(ctx context.Context) bool {
	if r.settings == nil {
		return true
	}
	m, err := r.settings.Get(ctx)
	if err != nil {
		return true
	}
	return store.NotificationSettingsFrom(m).ToastOnError
}

func (r *Refresher) rebuild(ctx context.Context) error {
	main, err := r.registry.MainAccount(ctx)
	if err != nil {
		return err
	}
	clients, err := r.registry.List(ctx)
	if err != nil {
		return err
	}

	mainStatus := r.agg.CheckMain()
	doc := AccountCache{
		UpdatedAt: time.Now().UTC(),
		Main: AccountEntry{
			AccountHash:   main.AccountHash,
			AccountNumber: main.AccountNumber,
			TokenValid:    mainStatus.IsValid,
			Message:       mainStatus.Message,
		},
		Clients: make(map[string]AccountEntry, len(clients)),
	}

	for _, c := range clients {
		st := r.agg.CheckClient(c.ID, c.Name)
		doc.Clients[c.ID] = AccountEntry{
			Name:          c.Name,
			AccountHash:   c.AccountHash,
			AccountNumber: c.AccountNumber,
			Enabled:       c.Enabled,
			TokenValid:    st.IsValid,
			Message:       st.Message,
		}
	}

	return store.WriteJSONFile(r.cfg.AccountCacheFile(), doc)
}

// CheckAndClearUpdated retorna si hubo un refresco desde la última
// consulta y resetea el flag. Lo consume el endpoint de polling de la GUI.
func (r *Refresher) CheckAndClearUpdated() bool {
	return r.updated.Swap(false)
}

// CachedMainAccountHash lee el hash de la cuenta principal desde el
// account cache en disco. Fuente de fallback cuando el registro no lo
// tiene; ausente o corrupto → "".
func CachedMainAccountHash(cfg *config.Config) string {
	var doc AccountCache
	if _, err := store.ReadJSONFile(cfg.AccountCacheFile(), &doc); err != nil {
		return ""
	}
	return doc.Main.AccountHash
}
