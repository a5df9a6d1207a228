package queue

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/api/metrics"
	"github.com/giftvault/catalog-api/internal/core/domain"
)

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, zerolog.Nop())

	event := domain.AuditEvent{Kind: domain.KindTag, Operation: domain.OpPersist, EntityID: 7}
	first := d.shardIndex(event)
	for i := 0; i < 100; i++ {
		if got := d.shardIndex(event); got != first {
			t.Fatalf("shard index changed: %d vs %d", got, first)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)

	counter := metrics.AuditRecordsTotal.WithLabelValues(string(domain.KindTag), string(domain.OpPersist))
	before := testutil.ToFloat64(counter)

	d.Publish(domain.AuditEvent{Kind: domain.KindTag, Operation: domain.OpPersist, EntityID: 7})

	deadline := time.After(2 * time.Second)
	for testutil.ToFloat64(counter) != before+1 {
		select {
		case <-deadline:
			t.Fatal("event not processed in time")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_FullBufferDropsWithoutBlocking(t *testing.T) {
	// Workers never started, so the buffers only fill up.
	d := NewDispatcher(1, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Publish(domain.AuditEvent{Kind: domain.KindTag, Operation: domain.OpPersist, EntityID: 7})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full buffer")
	}
}
