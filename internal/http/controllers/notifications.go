package controllers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/http/dto"
	"github.com/leozex777/syncschwab/internal/http/helpers"
	"github.com/leozex777/syncschwab/internal/notify"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/refresher"
)

// defaultDrainLimit es cuántas notificaciones entrega un poll si el
// cliente no pide otra cosa.
const defaultDrainLimit = 10

// NotificationsController es el endpoint de polling de la GUI (~2s):
// drena la cola de toasts y reporta el flag de cache actualizado.
type NotificationsController struct {
	Queue     *notify.Queue
	Refresher *refresher.Refresher // nil si el refresher está deshabilitado
	log       *zap.Logger
}

func NewNotificationsController(q *notify.Queue, ref *refresher.Refresher) *NotificationsController {
	return &NotificationsController{
		Queue:     q,
		Refresher: ref,
		log:       logger.Named("http.notifications"),
	}
}

// Poll maneja GET /v1/notifications?limit=N. Lo que retorna queda
// consumido (FIFO). El flag cache_updated se resetea al leerlo.
func (c *NotificationsController) Poll(w http.ResponseWriter, r *http.Request) {
	limit := defaultDrainLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	resp := dto.NotificationsResponse{
		Notifications: c.Queue.Drain(limit),
	}
	if resp.Notifications == nil {
		resp.Notifications = []notify.Notification{}
	}
	if c.Refresher != nil {
		resp.CacheUpdated = c.Refresher.CheckAndClearUpdated()
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}
