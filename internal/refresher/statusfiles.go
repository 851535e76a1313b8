package refresher

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/config"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/store"
)

// GUIStatus marca qué proceso GUI está vivo (config/gui_status.json).
// Sirve para detectar un arranque fresco: un PID distinto al grabado
// significa que el proceso anterior murió.
type GUIStatus struct {
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

// WorkerStatus es el comando compartido con el sync worker externo
// (config/worker_status.json).
type WorkerStatus struct {
	Command string `json:"command"` // "start" | "stop"
	Running bool   `json:"running"`
}

// MarkProcessStart estampa gui_status.json con nuestro PID y retorna si
// este es un proceso nuevo (PID distinto al previo o sin marker).
// En un arranque fresco fuerza worker_status a detenido: un worker que
// el proceso muerto dejó "running" ya no existe.
func MarkProcessStart(cfg *config.Config) (fresh bool, err error) {
	log := logger.Named("refresher")

	var prev GUIStatus
	found, rerr := store.ReadJSONFile(cfg.GUIStatusFile(), &prev)
	if rerr != nil {
		log.Warn("gui_status unreadable, treating as fresh start", zap.Error(rerr))
	}
	fresh = !found || prev.PID != os.Getpid()

	cur := GUIStatus{PID: os.Getpid(), StartedAt: time.Now().UTC()}
	if err := store.WriteJSONFile(cfg.GUIStatusFile(), cur); err != nil {
		return fresh, err
	}

	if fresh {
		ws := WorkerStatus{Command: "stop", Running: false}
		if err := store.WriteJSONFile(cfg.WorkerStatusFile(), ws); err != nil {
			log.Warn("could not force worker status to stopped", zap.Error(err))
		} else {
			log.Info("fresh process start, worker status forced to stopped",
				zap.Int("pid", cur.PID))
		}
	}
	return fresh, nil
}

// ReadWorkerStatus lee config/worker_status.json. Ausente o corrupto →
// detenido.
func ReadWorkerStatus(cfg *config.Config) WorkerStatus {
	var ws WorkerStatus
	if _, err := store.ReadJSONFile(cfg.WorkerStatusFile(), &ws); err != nil {
		return WorkerStatus{Command: "stop", Running: false}
	}
	if ws.Command == "" {
		ws.Command = "stop"
	}
	return ws
}
