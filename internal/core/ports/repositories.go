package ports

import (
	"context"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

// TxManager runs a function inside a single database transaction. The
// context passed to fn carries the transaction handle; repository calls made
// with it join that transaction. fn returning an error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository persists accounts and their role assignments.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	List(ctx context.Context, page Pagination) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// RoleRepository reads the fixed role catalog.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context, page Pagination) ([]domain.Role, error)
}

// TagRepository persists tags.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	FindByID(ctx context.Context, id int64) (*domain.Tag, error)
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context, page Pagination) ([]domain.Tag, error)
	Delete(ctx context.Context, id int64) error
}

// CertificateFilter narrows certificate listings. Zero values mean no
// filtering on that attribute.
type CertificateFilter struct {
	TagName     string
	Name        string
	Description string
	SortBy      string // "name" or "createDate"
	Descending  bool
}

// CertificateRepository persists gift certificates and their tag links.
type CertificateRepository interface {
	Create(ctx context.Context, cert *domain.GiftCertificate) error
	FindByID(ctx context.Context, id int64) (*domain.GiftCertificate, error)
	List(ctx context.Context, filter CertificateFilter, page Pagination) ([]domain.GiftCertificate, error)
	Update(ctx context.Context, cert *domain.GiftCertificate) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepository persists orders. Orders are insert-only.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.UserOrder) error
	FindByID(ctx context.Context, id int64) (*domain.UserOrder, error)
	List(ctx context.Context, page Pagination) ([]domain.UserOrder, error)
	ListByUser(ctx context.Context, userID int64, page Pagination) ([]domain.UserOrder, error)
	// ListAll streams every order for the spend/tag aggregation; no paging.
	ListAll(ctx context.Context) ([]domain.UserOrder, error)
	Delete(ctx context.Context, id int64) error
}
