package ports

import (
	"context"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

// CreateCertificateInput carries a full certificate payload for creation or
// PUT replacement. Tags are referenced by name; unknown names are created.
type CreateCertificateInput struct {
	Name        string
	Description string
	Price       int64
	Duration    int64
	Tags        []string
}

// CertificatePatch is a typed partial update. Nil fields are left untouched;
// date fields carry wire-format strings and are parsed on application.
// Unrecognized body keys never reach this struct and are ignored.
type CertificatePatch struct {
	Name           *string
	Description    *string
	Price          *int64
	Duration       *int64
	CreateDate     *string
	LastUpdateDate *string
}

// IsEmpty reports whether the patch changes nothing.
func (p CertificatePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Duration == nil && p.CreateDate == nil && p.LastUpdateDate == nil
}

// CertificateService covers the catalog's certificate operations.
type CertificateService interface {
	GetAll(ctx context.Context, filter CertificateFilter, page Pagination) ([]domain.GiftCertificate, error)
	GetByID(ctx context.Context, id int64) (*domain.GiftCertificate, error)
	Create(ctx context.Context, input CreateCertificateInput) (*domain.GiftCertificate, error)
	Update(ctx context.Context, id int64, input CreateCertificateInput) (*domain.GiftCertificate, error)
	Patch(ctx context.Context, id int64, patch CertificatePatch) (*domain.GiftCertificate, error)
	Delete(ctx context.Context, id int64) error
}

// TagService covers tag operations and the spend analytics query.
type TagService interface {
	GetAll(ctx context.Context, page Pagination) ([]domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	Create(ctx context.Context, name string) (*domain.Tag, error)
	Delete(ctx context.Context, id int64) error

	// MostUsedTagsOfTopSpender returns the most frequent tag(s) across the
	// order snapshots of the highest-spending user(s). Ties on spend pool
	// the users' orders together; ties on count return every winner.
	MostUsedTagsOfTopSpender(ctx context.Context) ([]domain.Tag, error)
}

// OrderService covers order placement and retrieval.
type OrderService interface {
	// Place creates an order for the authenticated user, snapshotting the
	// certificate and its price inside a single transaction.
	Place(ctx context.Context, userLogin string, certificateID int64) (*domain.UserOrder, error)
	GetAll(ctx context.Context, page Pagination) ([]domain.UserOrder, error)
	GetByID(ctx context.Context, id int64) (*domain.UserOrder, error)
	GetByUser(ctx context.Context, userID int64, page Pagination) ([]domain.UserOrder, error)
	Delete(ctx context.Context, id int64) error
}

// UserService covers account listing and removal plus the role catalog.
type UserService interface {
	GetAll(ctx context.Context, page Pagination) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	GetRoles(ctx context.Context, page Pagination) ([]domain.Role, error)
}
