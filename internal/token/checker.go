// Package token evalúa la validez del refresh token de una cuenta leyendo
// su archivo de tokens (formato de la librería de auth de terceros, que
// este servicio nunca escribe).
//
// Es un cómputo local puro sobre el contenido del archivo y el reloj:
// sin red, sin estado.
package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/metrics"
	"github.com/leozex777/syncschwab/internal/observability/logger"
)

// Status es el resultado de chequear un archivo de tokens.
// Se computa fresco en cada llamada, no se persiste.
type Status struct {
	HasToken        bool   `json:"has_token"`
	HasRefreshToken bool   `json:"has_refresh_token"`
	IsValid         bool   `json:"is_valid"`
	NeedsAuth       bool   `json:"needs_auth"`
	Message         string `json:"message"`
}

// tokenFile es el subset que nos interesa del formato externo.
type tokenFile struct {
	TokenDictionary struct {
		RefreshToken string `json:"refresh_token"`
	} `json:"token_dictionary"`
	RefreshTokenIssued string `json:"refresh_token_issued"`
}

// Checker evalúa archivos de tokens contra una ventana de validez fija.
type Checker struct {
	ttl time.Duration
	now func() time.Time
	log *zap.Logger
}

// NewChecker crea un checker con la ventana dada (7 días si ttl <= 0).
func NewChecker(ttl time.Duration) *Checker {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Checker{
		ttl: ttl,
		now: time.Now,
		log: logger.Named("token"),
	}
}

// WithClock reemplaza el reloj. Para tests.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// Check evalúa el archivo de tokens en path.
//
// Política de fallback: una fecha de emisión imparseable NO falla el
// chequeo — el token se reporta válido con vencimiento desconocido.
// Preferimos no forzar re-auth por un formato de fecha raro.
func (c *Checker) Check(path string) Status {
	st := c.check(path)

	result := "needs_auth"
	if st.IsValid {
		result = "valid"
	}
	metrics.TokenChecks.WithLabelValues(result).Inc()
	return st
}

func (c *Checker) check(path string) Status {
	result := Status{NeedsAuth: true}

	c.log.Debug("checking token", zap.String("path", path))

	b, err := os.ReadFile(path)
	if err != nil {
		result.Message = "❌ Token file not found"
		c.log.Debug("token file not found", zap.String("path", path))
		return result
	}

	if isEmptyJSON(b) {
		result.Message = "❌ Token file empty"
		c.log.Debug("token file empty", zap.String("path", path))
		return result
	}

	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		result.Message = "❌ Token file unreadable"
		c.log.Warn("token file unreadable", zap.String("path", path), zap.Error(err))
		return result
	}

	result.HasToken = true

	if tf.TokenDictionary.RefreshToken == "" {
		result.Message = "❌ No refresh_token"
		c.log.Warn("no refresh_token in token file", zap.String("path", path))
		return result
	}
	result.HasRefreshToken = true

	if tf.RefreshTokenIssued == "" {
		// Sin fecha de emisión: alcanza con que el refresh_token exista.
		result.IsValid = true
		result.NeedsAuth = false
		result.Message = "✅ Valid"
		return result
	}

	issued, err := ParseIssued(tf.RefreshTokenIssued)
	if err != nil {
		c.log.Debug("could not parse token issue date",
			zap.String("raw", tf.RefreshTokenIssued), zap.Error(err))
		result.IsValid = true
		result.NeedsAuth = false
		result.Message = "✅ Valid (date unknown)"
		return result
	}

	expires := issued.Add(c.ttl)
	now := c.now().UTC()

	if now.After(expires) {
		result.Message = "❌ Refresh token expired (>7 days)"
		c.log.Warn("refresh token expired",
			zap.Time("issued", issued), zap.Time("expired", expires))
		return result
	}

	remaining := expires.Sub(now)
	days := int(remaining / (24 * time.Hour))
	hours := int(remaining % (24 * time.Hour) / time.Hour)

	result.IsValid = true
	result.NeedsAuth = false
	result.Message = fmt.Sprintf("✅ Valid (%dd %dh left)", days, hours)

	c.log.Debug("token valid", zap.Int("days_left", days), zap.Int("hours_left", hours))
	return result
}

// ParseIssued parsea el timestamp de emisión aceptando tres encodings:
// offset explícito (±HH:MM), designador Z (UTC) y naive (se asume UTC).
// Los tres normalizan al mismo instante para el mismo wall-clock.
func ParseIssued(s string) (time.Time, error) {
	// RFC3339 cubre tanto ±HH:MM como Z, con o sin fracción de segundos.
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	// Naive: sin offset → UTC.
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("token: unparseable timestamp %q", s)
}

// isEmptyJSON detecta "{}", "null" o whitespace.
func isEmptyJSON(b []byte) bool {
	if len(bytes.TrimSpace(b)) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return false
	}
	switch m := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(m) == 0
	}
	return false
}
