package controllers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/http/dto"
	"github.com/leozex777/syncschwab/internal/http/helpers"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/shell"
)

// UIStateController persiste y resuelve el estado de navegación.
type UIStateController struct {
	Store *shell.Store
	log   *zap.Logger
}

func NewUIStateController(st *shell.Store) *UIStateController {
	return &UIStateController{Store: st, log: logger.Named("http.uistate")}
}

// Get maneja GET /v1/ui-state: estado + página resuelta.
func (c *UIStateController) Get(w http.ResponseWriter, r *http.Request) {
	st, err := c.Store.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.UIStateResponse{UIState: st, Page: st.Page()})
}

// Put maneja PUT /v1/ui-state: reemplaza los flags de navegación.
func (c *UIStateController) Put(w http.ResponseWriter, r *http.Request) {
	var st shell.UIState
	if !helpers.ReadJSON(w, r, &st) {
		return
	}

	if err := c.Store.Save(r.Context(), st); err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.UIStateResponse{UIState: st, Page: st.Page()})
}
