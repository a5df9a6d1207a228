package domain

import "encoding/json"

// OperationType tags the kind of mutation captured by an audit record.
type OperationType string

const (
	OpPersist OperationType = "PERSIST"
	OpUpdate  OperationType = "UPDATE"
	OpRemove  OperationType = "REMOVE"
)

// EntityKind names an auditable entity type in journal records.
type EntityKind string

const (
	KindUser        EntityKind = "User"
	KindTag         EntityKind = "Tag"
	KindCertificate EntityKind = "GiftCertificate"
	KindUserOrder   EntityKind = "UserOrder"
)

// AuditRecord is one immutable journal entry: which kind of entity changed,
// how, when, and the full entity state at the observation point.
type AuditRecord struct {
	ID                 int64           `json:"id"`
	OperationType      OperationType   `json:"operationType"`
	OperationTimestamp DateTime        `json:"operationTimestamp"`
	EntityKind         EntityKind      `json:"entityKind"`
	EntitySnapshot     json.RawMessage `json:"entitySnapshot"`
}

// AuditEvent is the lightweight post-commit notification fanned out to the
// journal dispatcher for metrics and operator logging. It carries no
// snapshot; the durable record is already committed by then.
type AuditEvent struct {
	Kind      EntityKind
	Operation OperationType
	EntityID  int64
}

// NewAuditRecord builds a journal entry for the given entity. The entity is
// serialized as a tagged-variant JSON snapshot; kinds outside the auditable
// set fail with ErrEntityNotAuditable.
func NewAuditRecord(op OperationType, entity any, at DateTime) (AuditRecord, error) {
	kind, _, err := auditableKind(entity)
	if err != nil {
		return AuditRecord{}, err
	}

	snapshot, err := json.Marshal(entity)
	if err != nil {
		return AuditRecord{}, err
	}

	return AuditRecord{
		OperationType:      op,
		OperationTimestamp: at,
		EntityKind:         kind,
		EntitySnapshot:     snapshot,
	}, nil
}

// AuditEventFor derives the dispatcher notification for an entity, with the
// same auditable-kind check as NewAuditRecord.
func AuditEventFor(op OperationType, entity any) (AuditEvent, error) {
	kind, id, err := auditableKind(entity)
	if err != nil {
		return AuditEvent{}, err
	}
	return AuditEvent{Kind: kind, Operation: op, EntityID: id}, nil
}

func auditableKind(entity any) (EntityKind, int64, error) {
	switch e := entity.(type) {
	case User:
		return KindUser, e.ID, nil
	case Tag:
		return KindTag, e.ID, nil
	case GiftCertificate:
		return KindCertificate, e.ID, nil
	case UserOrder:
		return KindUserOrder, e.ID, nil
	default:
		return "", 0, ErrEntityNotAuditable
	}
}
