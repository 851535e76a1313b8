package controllers

import (
	"net/http"

	"go.uber.org/zap"

	httperr "github.com/leozex777/syncschwab/internal/http/errors"
	"github.com/leozex777/syncschwab/internal/http/helpers"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/store"
)

// SettingsController maneja config/general_settings.json.
type SettingsController struct {
	Store *store.SettingsStore
	log   *zap.Logger
}

func NewSettingsController(st *store.SettingsStore) *SettingsController {
	return &SettingsController{Store: st, log: logger.Named("http.settings")}
}

// Get maneja GET /v1/settings.
func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	m, err := c.Store.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, m)
}

// Put maneja PUT /v1/settings: reemplazo del documento completo.
func (c *SettingsController) Put(w http.ResponseWriter, r *http.Request) {
	var m map[string]any
	if !helpers.ReadJSON(w, r, &m) {
		return
	}
	if m == nil {
		httperr.WriteError(w, httperr.ErrInvalidJSON)
		return
	}

	if err := c.Store.Save(r.Context(), m); err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, m)
}
