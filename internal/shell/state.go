// Package shell modela el estado de navegación de la GUI: qué página se
// muestra, resuelta desde flags mutuamente excluyentes en un orden de
// prioridad fijo. El estado se persiste en config/ui_state.json para
// sobrevivir recargas.
package shell

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/cache"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/store"
)

// Page identifica una página de la GUI.
type Page string

const (
	PageDashboard        Page = "dashboard"
	PageMainAccountEdit  Page = "main_account_edit"
	PageClientManagement Page = "client_management"
	PageSynchronization  Page = "synchronization"
	PageLogViewer        Page = "log_viewer"
	PageClientDetail     Page = "client_detail"
)

// UIState son los flags de navegación de la GUI.
type UIState struct {
	ShowMainAccountEdit  bool   `json:"show_main_account_edit,omitempty"`
	ShowClientManagement bool   `json:"show_client_management,omitempty"`
	ShowSynchronization  bool   `json:"show_synchronization,omitempty"`
	ShowLogViewer        bool   `json:"show_log_viewer,omitempty"`
	SelectedClientID     string `json:"selected_client_id,omitempty"`
}

// Page resuelve la página visible. El orden de chequeo es fijo:
// MainAccountEdit > ClientManagement > Synchronization > LogViewer >
// ClientDetail > Dashboard. Sin flags activos se cae al dashboard.
func (s UIState) Page() Page {
	switch {
	case s.ShowMainAccountEdit:
		return PageMainAccountEdit
	case s.ShowClientManagement:
		return PageClientManagement
	case s.ShowSynchronization:
		return PageSynchronization
	case s.ShowLogViewer:
		return PageLogViewer
	case s.SelectedClientID != "":
		return PageClientDetail
	default:
		return PageDashboard
	}
}

const uiStateCacheKey = "config:ui_state"

// Store persiste el UIState en config/ui_state.json, fronteado por cache.
type Store struct {
	path  string
	cache cache.Client
	log   *zap.Logger
}

func NewStore(path string, c cache.Client) *Store {
	return &Store{path: path, cache: c, log: logger.Named("shell")}
}

// Get retorna el estado persistido. Ausente o corrupto → estado cero
// (dashboard).
func (s *Store) Get(ctx context.Context) (UIState, error) {
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, uiStateCacheKey); err == nil {
			var st UIState
			if json.Unmarshal(b, &st) == nil {
				return st, nil
			}
		}
	}

	var st UIState
	if _, err := store.ReadJSONFile(s.path, &st); err != nil {
		s.log.Warn("ui_state malformed, resetting to dashboard", zap.Error(err))
		st = UIState{}
	}

	if s.cache != nil {
		if b, err := os.ReadFile(s.path); err == nil {
			_ = s.cache.Set(ctx, uiStateCacheKey, b, 0)
		}
	}
	return st, nil
}

// Save persiste el estado y refresca el cache.
func (s *Store) Save(ctx context.Context, st UIState) error {
	if err := store.WriteJSONFile(s.path, st); err != nil {
		return err
	}
	if s.cache != nil {
		if b, err := json.Marshal(st); err == nil {
			_ = s.cache.Set(ctx, uiStateCacheKey, b, 0)
		}
	}
	s.log.Debug("ui state saved", zap.String("page", string(st.Page())))
	return nil
}
