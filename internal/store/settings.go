package store

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/cache"
	"github.com/leozex777/syncschwab/internal/observability/logger"
)

const settingsCacheKey = "config:general_settings"

// SettingsStore frontea config/general_settings.json con el cache.
// El documento es un mapa abierto: la GUI guarda secciones arbitrarias
// (notifications, sync, ui) y el servicio solo interpreta las que conoce.
type SettingsStore struct {
	path  string
	cache cache.Client
	log   *zap.Logger
}

func NewSettingsStore(path string, c cache.Client) *SettingsStore {
	return &SettingsStore{path: path, cache: c, log: logger.Named("settings")}
}

// Get retorna el documento de settings, desde cache si está poblado.
// Ausente o corrupto → mapa vacío.
func (s *SettingsStore) Get(ctx context.Context) (map[string]any, error) {
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, settingsCacheKey); err == nil {
			var m map[string]any
			if json.Unmarshal(b, &m) == nil {
				return m, nil
			}
		}
	}

	m := map[string]any{}
	if _, err := ReadJSONFile(s.path, &m); err != nil {
		s.log.Warn("settings file malformed, using empty", zap.Error(err))
		m = map[string]any{}
	}

	if s.cache != nil {
		if b, err := os.ReadFile(s.path); err == nil {
			_ = s.cache.Set(ctx, settingsCacheKey, b, 0)
		}
	}
	return m, nil
}

// Save escribe el documento completo y refresca el cache.
func (s *SettingsStore) Save(ctx context.Context, m map[string]any) error {
	if err := WriteJSONFile(s.path, m); err != nil {
		return err
	}
	if s.cache != nil {
		if b, err := json.Marshal(m); err == nil {
			_ = s.cache.Set(ctx, settingsCacheKey, b, 0)
		}
	}
	return nil
}

// NotificationSettings son las preferencias de notificación dentro de
// general_settings.json, con los defaults del producto.
type NotificationSettings struct {
	ToastOnError     bool   `json:"toast_on_error"`
	ToastOnSuccess   bool   `json:"toast_on_success"`
	SoundOnError     bool   `json:"sound_on_error"`
	TelegramEnabled  bool   `json:"telegram_enabled"`
	TelegramBotToken string `json:"telegram_bot_token"`
	TelegramChatID   string `json:"telegram_chat_id"`
}

// NotificationSettingsFrom extrae la sección notifications con defaults:
// toast y sonido en error activos, el resto apagado.
func NotificationSettingsFrom(settings map[string]any) NotificationSettings {
	out := NotificationSettings{
		ToastOnError: true,
		SoundOnError: true,
	}

	section, ok := settings["notifications"].(map[string]any)
	if !ok {
		return out
	}
	if v, ok := section["toast_on_error"].(bool); ok {
		out.ToastOnError = v
	}
	if v, ok := section["toast_on_success"].(bool); ok {
		out.ToastOnSuccess = v
	}
	if v, ok := section["sound_on_error"].(bool); ok {
		out.SoundOnError = v
	}
	if v, ok := section["telegram_enabled"].(bool); ok {
		out.TelegramEnabled = v
	}
	if v, ok := section["telegram_bot_token"].(string); ok {
		out.TelegramBotToken = v
	}
	if v, ok := section["telegram_chat_id"].(string); ok {
		out.TelegramChatID = v
	}
	return out
}
