package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// Shared function-field stubs for service tests. Only the fields a test
// sets are callable; everything else panics with a nil dereference, which
// is the desired failure for an unexpected call.

var testLog = zerolog.Nop()

type stubTx struct {
	calls int
}

func (s *stubTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

type stubAudit struct {
	records []recordedAudit
	failOn  domain.OperationType
	err     error
}

type recordedAudit struct {
	op     domain.OperationType
	entity any
}

func (s *stubAudit) Record(ctx context.Context, op domain.OperationType, entity any) error {
	if s.err != nil && op == s.failOn {
		return s.err
	}
	s.records = append(s.records, recordedAudit{op: op, entity: entity})
	return nil
}

type stubFeed struct {
	events []domain.AuditEvent
}

func (s *stubFeed) Publish(event domain.AuditEvent) {
	s.events = append(s.events, event)
}

type stubUserRepo struct {
	createFn      func(ctx context.Context, user *domain.User) error
	findByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	findByLoginFn func(ctx context.Context, login string) (*domain.User, error)
	listFn        func(ctx context.Context, page ports.Pagination) ([]domain.User, error)
	deleteFn      func(ctx context.Context, id int64) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	return s.createFn(ctx, user)
}
func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubUserRepo) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	return s.findByLoginFn(ctx, login)
}
func (s *stubUserRepo) List(ctx context.Context, page ports.Pagination) ([]domain.User, error) {
	return s.listFn(ctx, page)
}
func (s *stubUserRepo) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubRoleRepo struct {
	findByNameFn func(ctx context.Context, name string) (*domain.Role, error)
	listFn       func(ctx context.Context, page ports.Pagination) ([]domain.Role, error)
}

func (s *stubRoleRepo) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.findByNameFn(ctx, name)
}
func (s *stubRoleRepo) List(ctx context.Context, page ports.Pagination) ([]domain.Role, error) {
	return s.listFn(ctx, page)
}

type stubTagRepo struct {
	createFn     func(ctx context.Context, tag *domain.Tag) error
	findByIDFn   func(ctx context.Context, id int64) (*domain.Tag, error)
	findByNameFn func(ctx context.Context, name string) (*domain.Tag, error)
	listFn       func(ctx context.Context, page ports.Pagination) ([]domain.Tag, error)
	deleteFn     func(ctx context.Context, id int64) error
}

func (s *stubTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	return s.createFn(ctx, tag)
}
func (s *stubTagRepo) FindByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubTagRepo) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	return s.findByNameFn(ctx, name)
}
func (s *stubTagRepo) List(ctx context.Context, page ports.Pagination) ([]domain.Tag, error) {
	return s.listFn(ctx, page)
}
func (s *stubTagRepo) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubCertRepo struct {
	createFn   func(ctx context.Context, cert *domain.GiftCertificate) error
	findByIDFn func(ctx context.Context, id int64) (*domain.GiftCertificate, error)
	listFn     func(ctx context.Context, filter ports.CertificateFilter, page ports.Pagination) ([]domain.GiftCertificate, error)
	updateFn   func(ctx context.Context, cert *domain.GiftCertificate) error
	deleteFn   func(ctx context.Context, id int64) error
}

func (s *stubCertRepo) Create(ctx context.Context, cert *domain.GiftCertificate) error {
	return s.createFn(ctx, cert)
}
func (s *stubCertRepo) FindByID(ctx context.Context, id int64) (*domain.GiftCertificate, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubCertRepo) List(ctx context.Context, filter ports.CertificateFilter, page ports.Pagination) ([]domain.GiftCertificate, error) {
	return s.listFn(ctx, filter, page)
}
func (s *stubCertRepo) Update(ctx context.Context, cert *domain.GiftCertificate) error {
	return s.updateFn(ctx, cert)
}
func (s *stubCertRepo) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubOrderRepo struct {
	createFn     func(ctx context.Context, order *domain.UserOrder) error
	findByIDFn   func(ctx context.Context, id int64) (*domain.UserOrder, error)
	listFn       func(ctx context.Context, page ports.Pagination) ([]domain.UserOrder, error)
	listByUserFn func(ctx context.Context, userID int64, page ports.Pagination) ([]domain.UserOrder, error)
	listAllFn    func(ctx context.Context) ([]domain.UserOrder, error)
	deleteFn     func(ctx context.Context, id int64) error
}

func (s *stubOrderRepo) Create(ctx context.Context, order *domain.UserOrder) error {
	return s.createFn(ctx, order)
}
func (s *stubOrderRepo) FindByID(ctx context.Context, id int64) (*domain.UserOrder, error) {
	return s.findByIDFn(ctx, id)
}
func (s *stubOrderRepo) List(ctx context.Context, page ports.Pagination) ([]domain.UserOrder, error) {
	return s.listFn(ctx, page)
}
func (s *stubOrderRepo) ListByUser(ctx context.Context, userID int64, page ports.Pagination) ([]domain.UserOrder, error) {
	return s.listByUserFn(ctx, userID, page)
}
func (s *stubOrderRepo) ListAll(ctx context.Context) ([]domain.UserOrder, error) {
	return s.listAllFn(ctx)
}
func (s *stubOrderRepo) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubCache struct {
	store       map[int64]*domain.GiftCertificate
	invalidated []int64
}

func newStubCache() *stubCache {
	return &stubCache{store: make(map[int64]*domain.GiftCertificate)}
}

func (s *stubCache) Get(ctx context.Context, id int64) (*domain.GiftCertificate, bool) {
	cert, ok := s.store[id]
	return cert, ok
}
func (s *stubCache) Set(ctx context.Context, cert *domain.GiftCertificate) {
	s.store[cert.ID] = cert
}
func (s *stubCache) Invalidate(ctx context.Context, id int64) {
	delete(s.store, id)
	s.invalidated = append(s.invalidated, id)
}
