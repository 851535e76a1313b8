// Package dto define los cuerpos de request/response de la API.
package dto

import (
	"github.com/leozex777/syncschwab/internal/notify"
	"github.com/leozex777/syncschwab/internal/shell"
	"github.com/leozex777/syncschwab/internal/store"
)

// AddClientRequest crea una cuenta cliente nueva.
type AddClientRequest struct {
	AccountHash   string         `json:"account_hash"`
	AccountNumber string         `json:"account_number"`
	Name          string         `json:"name"`
	Settings      map[string]any `json:"settings"`
}

// UpdateClientRequest es el patch parcial de un cliente. La key
// "settings" se mergea, el resto sobreescribe.
type UpdateClientRequest struct {
	Updates map[string]any `json:"updates"`
}

// ClientListResponse lista clientes.
type ClientListResponse struct {
	Clients []store.ClientRecord `json:"clients"`
	Total   int                  `json:"total"`
}

// ToggleResponse es el resultado de invertir enabled.
type ToggleResponse struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// MainAccountRequest reemplaza la cuenta principal completa.
type MainAccountRequest struct {
	AccountHash   string `json:"account_hash"`
	AccountNumber string `json:"account_number"`
}

// MainAccountResponse retorna la cuenta principal. Si el registro no
// tiene el hash, account_hash sale del account cache (fallback) y
// from_cache lo marca.
type MainAccountResponse struct {
	AccountHash   string `json:"account_hash,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	Configured    bool   `json:"configured"`
	FromCache     bool   `json:"from_cache,omitempty"`
}

// NotificationsResponse es la respuesta del endpoint de polling de la GUI.
type NotificationsResponse struct {
	Notifications []notify.Notification `json:"notifications"`
	CacheUpdated  bool                  `json:"cache_updated"`
}

// UIStateResponse agrega la página resuelta al estado persistido.
type UIStateResponse struct {
	shell.UIState
	Page shell.Page `json:"page"`
}

// WorkerStatusResponse expone config/worker_status.json.
type WorkerStatusResponse struct {
	Command string `json:"command"`
	Running bool   `json:"running"`
}
