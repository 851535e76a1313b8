package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/http/helpers"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/registry"
	"github.com/leozex777/syncschwab/internal/status"
)

// StatusController expone el dashboard de autorización de tokens.
type StatusController struct {
	Registry   *registry.Registry
	Aggregator *status.Aggregator
	log        *zap.Logger
}

func NewStatusController(reg *registry.Registry, agg *status.Aggregator) *StatusController {
	return &StatusController{
		Registry:   reg,
		Aggregator: agg,
		log:        logger.Named("http.status"),
	}
}

// All maneja GET /v1/status/tokens: main + todos los clientes + contadores.
func (c *StatusController) All(w http.ResponseWriter, r *http.Request) {
	agg, err := c.Aggregator.CheckAll(r.Context(), c.Registry)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, agg)
}

// Main maneja GET /v1/status/tokens/main.
func (c *StatusController) Main(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.Aggregator.CheckMain())
}

// Client maneja GET /v1/status/tokens/{id}.
func (c *StatusController) Client(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	client, err := c.Registry.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	st := c.Aggregator.CheckClient(client.ID, client.Name)
	st.IsEnabled = client.Enabled
	helpers.WriteJSON(w, http.StatusOK, st)
}
