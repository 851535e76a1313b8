package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/leozex777/syncschwab/internal/cache"
)

func TestSettingsStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "general_settings.json")
	s := NewSettingsStore(path, cache.NewMemory("t", time.Minute))

	// Sin archivo: mapa vacío.
	m, err := s.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty settings, got %v", m)
	}

	in := map[string]any{
		"notifications": map[string]any{"toast_on_error": false},
		"polling_ms":    float64(2000),
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatal(err)
	}

	// Releer con un store nuevo sin cache.
	fresh := NewSettingsStore(path, nil)
	m, err = fresh.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if m["polling_ms"] != float64(2000) {
		t.Fatalf("polling_ms = %v", m["polling_ms"])
	}
}

func TestNotificationSettingsFrom_Defaults(t *testing.T) {
	ns := NotificationSettingsFrom(map[string]any{})
	if !ns.ToastOnError || !ns.SoundOnError {
		t.Fatalf("error defaults must be on: %+v", ns)
	}
	if ns.ToastOnSuccess || ns.TelegramEnabled {
		t.Fatalf("success/telegram default off: %+v", ns)
	}
}

func TestNotificationSettingsFrom_Overrides(t *testing.T) {
	ns := NotificationSettingsFrom(map[string]any{
		"notifications": map[string]any{
			"toast_on_error":   false,
			"toast_on_success": true,
			"telegram_enabled": true,
			"telegram_chat_id": "12345",
		},
	})
	if ns.ToastOnError {
		t.Fatal("toast_on_error override lost")
	}
	if !ns.ToastOnSuccess || !ns.TelegramEnabled {
		t.Fatalf("overrides lost: %+v", ns)
	}
	if ns.TelegramChatID != "12345" {
		t.Fatalf("chat id = %q", ns.TelegramChatID)
	}
	// Sin override, el default de sonido sigue activo.
	if !ns.SoundOnError {
		t.Fatal("sound_on_error default lost")
	}
}
