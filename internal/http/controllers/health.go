package controllers

import (
	"net/http"
	"os"

	"github.com/leozex777/syncschwab/internal/cache"
	"github.com/leozex777/syncschwab/internal/config"
	"github.com/leozex777/syncschwab/internal/http/dto"
	"github.com/leozex777/syncschwab/internal/http/helpers"
	"github.com/leozex777/syncschwab/internal/refresher"
)

// HealthController expone healthz/readyz y el estado del worker externo.
type HealthController struct {
	Config *config.Config
	Cache  cache.Client
}

func NewHealthController(cfg *config.Config, c cache.Client) *HealthController {
	return &HealthController{Config: cfg, Cache: c}
}

// Healthz maneja GET /healthz.
func (c *HealthController) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz maneja GET /readyz: directorio de config accesible y cache
// respondiendo.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(c.Config.ConfigDir()); err != nil {
		helpers.WriteJSON(w, http.StatusServiceUnavailable,
			map[string]string{"status": "config dir unavailable"})
		return
	}
	if c.Cache != nil {
		if err := c.Cache.Ping(r.Context()); err != nil {
			helpers.WriteJSON(w, http.StatusServiceUnavailable,
				map[string]string{"status": "cache unavailable"})
			return
		}
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Worker maneja GET /v1/worker: el estado compartido con el sync worker.
func (c *HealthController) Worker(w http.ResponseWriter, _ *http.Request) {
	ws := refresher.ReadWorkerStatus(c.Config)
	helpers.WriteJSON(w, http.StatusOK, dto.WorkerStatusResponse{
		Command: ws.Command,
		Running: ws.Running,
	})
}
