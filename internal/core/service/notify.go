package service

import (
	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// notify publishes a post-commit audit notification. The durable journal
// entry is already committed; this is metrics/logging fan-out only, so a nil
// feed or an unauditable entity is silently ignored.
func notify(feed ports.AuditFeed, op domain.OperationType, entity any) {
	if feed == nil {
		return
	}
	event, err := domain.AuditEventFor(op, entity)
	if err != nil {
		return
	}
	feed.Publish(event)
}
