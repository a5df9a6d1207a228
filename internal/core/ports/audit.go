package ports

import (
	"context"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

// AuditRecorder journalizes a single entity mutation. Record must be called
// inside the same transaction as the primary mutation so the journal entry
// commits or rolls back with it.
type AuditRecorder interface {
	Record(ctx context.Context, op domain.OperationType, entity any) error
}

// AuditFeed receives post-commit audit notifications. Publishing is
// fire-and-forget; delivery failures never affect the committed mutation.
type AuditFeed interface {
	Publish(event domain.AuditEvent)
}

// CertificateCache is a read-through cache for public certificate lookups.
// A miss is not an error; Get reports it via the bool.
type CertificateCache interface {
	Get(ctx context.Context, id int64) (*domain.GiftCertificate, bool)
	Set(ctx context.Context, cert *domain.GiftCertificate)
	Invalidate(ctx context.Context, id int64)
}
