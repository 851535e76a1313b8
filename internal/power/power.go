// Package power implementa la prevención de suspensión del sistema
// mientras el copiador está activo. Solo tiene efecto real en Windows;
// en otras plataformas Acquire falla en silencio (retorna false, sin
// error), igual que el producto original.
package power

import (
	"sync"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/observability/logger"
)

// KeepAwake es un recurso con ciclo de vida init → active → released.
// Acquire y Release son idempotentes; tras Release el recurso no se
// puede reactivar (crear uno nuevo).
type KeepAwake struct {
	mu       sync.Mutex
	active   bool
	released bool
	log      *zap.Logger
}

func New() *KeepAwake {
	return &KeepAwake{log: logger.Named("power")}
}

// Acquire activa la prevención de suspensión. Retorna si quedó activa:
// false en plataformas sin soporte o si el recurso ya fue liberado.
func (k *KeepAwake) Acquire() bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.released {
		return false
	}
	if k.active {
		return true
	}

	if !setKeepAwake(true) {
		k.log.Debug("sleep prevention unavailable on this platform")
		return false
	}
	k.active = true
	k.log.Info("sleep prevention enabled")
	return true
}

// Active reporta si la prevención está activa.
func (k *KeepAwake) Active() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.active
}

// Release libera el recurso. Idempotente; seguro de llamar en shutdown
// aunque Acquire nunca haya tenido éxito.
func (k *KeepAwake) Release() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.released {
		return
	}
	k.released = true

	if k.active {
		setKeepAwake(false)
		k.active = false
		k.log.Info("sleep prevention released")
	}
}
