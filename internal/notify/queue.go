// Package notify implementa la cola de notificaciones (toasts) entre el
// refresher en background y la GUI que la drena por polling (~2s).
//
// Productor y consumidor corren en goroutines distintas: la cola es
// thread-safe y acotada (drop-oldest al llenarse, como el producto
// original con su tope de 50).
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/metrics"
	"github.com/leozex777/syncschwab/internal/observability/logger"
)

// Severity clasifica una notificación.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultCapacity es el tope de la cola.
const DefaultCapacity = 50

// Notification es un mensaje para mostrar en la GUI.
type Notification struct {
	ID        string    `json:"id"`
	Type      Severity  `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Symbol    string    `json:"symbol,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Queue es la cola FIFO acotada.
type Queue struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
	log      *zap.Logger
}

// NewQueue crea una cola con la capacidad dada (DefaultCapacity si <= 0).
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		capacity: capacity,
		log:      logger.Named("notify"),
	}
}

// Publish encola una notificación. Si la cola está llena se descarta
// la más vieja.
func (q *Queue) Publish(severity Severity, message string) {
	q.publish(Notification{Type: severity, Message: message})
}

// PublishDetailed encola una notificación con símbolo y detalle.
func (q *Queue) PublishDetailed(severity Severity, message, symbol, details string) {
	q.publish(Notification{Type: severity, Message: message, Symbol: symbol, Details: details})
}

func (q *Queue) publish(n Notification) {
	n.ID = uuid.NewString()
	n.Timestamp = time.Now().UTC()

	q.mu.Lock()
	if len(q.items) >= q.capacity {
		dropped := len(q.items) - q.capacity + 1
		q.items = q.items[dropped:]
		metrics.NotificationsDropped.Add(float64(dropped))
	}
	q.items = append(q.items, n)
	q.mu.Unlock()

	metrics.Notifications.WithLabelValues(string(n.Type)).Inc()
	q.log.Debug("notification queued",
		zap.String("type", string(n.Type)), zap.String("message", n.Message))
}

// Drain retorna y remueve hasta limit notificaciones pendientes,
// en orden de llegada. limit <= 0 drena todo.
func (q *Queue) Drain(limit int) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	if limit <= 0 || limit > len(q.items) {
		limit = len(q.items)
	}

	out := make([]Notification, limit)
	copy(out, q.items[:limit])
	q.items = q.items[limit:]
	return out
}

// Len retorna la cantidad pendiente.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear vacía la cola.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}

// Atajos por severidad.

func (q *Queue) Info(message string)    { q.Publish(SeverityInfo, message) }
func (q *Queue) Success(message string) { q.Publish(SeveritySuccess, message) }
func (q *Queue) Warning(message string) { q.Publish(SeverityWarning, message) }
func (q *Queue) Error(message string)   { q.Publish(SeverityError, message) }
