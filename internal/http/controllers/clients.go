// Package controllers implementa los handlers de la API.
package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	httperr "github.com/leozex777/syncschwab/internal/http/errors"
	"github.com/leozex777/syncschwab/internal/http/dto"
	"github.com/leozex777/syncschwab/internal/http/helpers"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/registry"
	"github.com/leozex777/syncschwab/internal/store"
)

// ClientsController maneja el CRUD de cuentas cliente.
type ClientsController struct {
	Registry *registry.Registry
	log      *zap.Logger
}

func NewClientsController(reg *registry.Registry) *ClientsController {
	return &ClientsController{Registry: reg, log: logger.Named("http.clients")}
}

// writeDomainError mapea errores de dominio a la taxonomía HTTP.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrClientNotFound):
		httperr.WriteError(w, httperr.ErrClientNotFound)
	case errors.Is(err, store.ErrRevisionConflict):
		httperr.WriteError(w, httperr.ErrRevisionConflict)
	default:
		httperr.WriteError(w, httperr.ErrInternal.WithCause(err))
	}
}

// List maneja GET /v1/clients (?enabled=true filtra habilitados).
func (c *ClientsController) List(w http.ResponseWriter, r *http.Request) {
	var (
		clients []store.ClientRecord
		err     error
	)
	if r.URL.Query().Get("enabled") == "true" {
		clients, err = c.Registry.Enabled(r.Context())
	} else {
		clients, err = c.Registry.List(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.ClientListResponse{
		Clients: clients,
		Total:   len(clients),
	})
}

// Add maneja POST /v1/clients.
func (c *ClientsController) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddClientRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.AccountHash == "" || req.AccountNumber == "" || req.Name == "" {
		httperr.WriteError(w, httperr.ErrMissingFields.
			WithDetail("account_hash, account_number y name son requeridos"))
		return
	}

	client, err := c.Registry.Add(r.Context(), req.AccountHash, req.AccountNumber, req.Name, req.Settings)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, client)
}

// Get maneja GET /v1/clients/{id}.
func (c *ClientsController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	client, err := c.Registry.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, client)
}

// Update maneja PATCH /v1/clients/{id}. La key "settings" del patch se
// mergea en los settings existentes, nunca los reemplaza completos.
func (c *ClientsController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateClientRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if len(req.Updates) == 0 {
		httperr.WriteError(w, httperr.ErrMissingFields.WithDetail("updates vacío"))
		return
	}

	if err := c.Registry.Update(r.Context(), id, req.Updates); err != nil {
		writeDomainError(w, err)
		return
	}

	client, err := c.Registry.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, client)
}

// Delete maneja DELETE /v1/clients/{id}. Idempotente: borrar un id
// ausente también es 204.
func (c *ClientsController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.Registry.Remove(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle maneja POST /v1/clients/{id}/toggle.
func (c *ClientsController) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	enabled, err := c.Registry.Toggle(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ToggleResponse{ID: id, Enabled: enabled})
}
