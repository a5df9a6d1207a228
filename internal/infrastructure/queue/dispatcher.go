// Package queue fans out post-commit audit notifications to a fixed worker
// pool. The durable journal record is already committed by the time an event
// reaches the dispatcher; workers only update metrics and operator logs, so
// a dropped event never loses audit data.
package queue

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/api/metrics"
	"github.com/giftvault/catalog-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on entity kind and id, keeping per-entity event ordering.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its entity. When the
// worker's buffer is full the event is dropped with a warning; the journal
// row itself is already durable.
func (d *Dispatcher) Publish(event domain.AuditEvent) {
	select {
	case d.workers[d.shardIndex(event)] <- event:
	default:
		d.log.Warn().
			Str("kind", string(event.Kind)).
			Str("operation", string(event.Operation)).
			Int64("entity_id", event.EntityID).
			Msg("audit feed buffer full, notification dropped")
	}
}

// shardIndex maps an event deterministically to a worker index.
func (d *Dispatcher) shardIndex(event domain.AuditEvent) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", event.Kind, event.EntityID)
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditRecordsTotal.WithLabelValues(string(event.Kind), string(event.Operation)).Inc()
			d.log.Info().
				Str("kind", string(event.Kind)).
				Str("operation", string(event.Operation)).
				Int64("entity_id", event.EntityID).
				Int("worker_id", id).
				Msg("audit record committed")
		}
	}
}
