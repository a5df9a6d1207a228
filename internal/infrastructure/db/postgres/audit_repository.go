package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

// AuditRepository appends journal entries to the audit table. It implements
// ports.AuditRecorder: when called with a transaction-bound context the
// journal write joins the primary mutation's transaction, so both commit or
// roll back together. Rows are never updated or deleted.
type AuditRepository struct {
	db  *DB
	log zerolog.Logger
}

func NewAuditRepository(db *DB, log zerolog.Logger) *AuditRepository {
	return &AuditRepository{db: db, log: log}
}

// Record builds and inserts an audit record for the entity. Unauditable
// kinds fail with domain.ErrEntityNotAuditable before touching the database.
func (r *AuditRepository) Record(ctx context.Context, op domain.OperationType, entity any) error {
	record, err := domain.NewAuditRecord(op, entity, domain.Now())
	if err != nil {
		return err
	}

	query, args, err := qb.Insert("audit").
		Columns("operation_type", "operation_timestamp", "entity_kind", "entity_snapshot").
		Values(record.OperationType, record.OperationTimestamp, record.EntityKind, []byte(record.EntitySnapshot)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit record: %w", err)
	}

	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&record.ID); err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
