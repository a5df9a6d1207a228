package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// OrderService implements order placement and retrieval. Placement resolves
// the user and certificate, snapshots the certificate by value, and writes
// the order plus its audit record in one transaction.
type OrderService struct {
	orders ports.OrderRepository
	users  ports.UserRepository
	certs  ports.CertificateRepository
	audit  ports.AuditRecorder
	feed   ports.AuditFeed
	tx     ports.TxManager
	log    zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	users ports.UserRepository,
	certs ports.CertificateRepository,
	audit ports.AuditRecorder,
	feed ports.AuditFeed,
	tx ports.TxManager,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders: orders,
		users:  users,
		certs:  certs,
		audit:  audit,
		feed:   feed,
		tx:     tx,
		log:    log,
	}
}

// Place creates an order for the authenticated user. userLogin comes from
// the request principal, never from the request body. The price recorded is
// the one read inside this transaction; catalog changes committing later do
// not affect it.
func (s *OrderService) Place(ctx context.Context, userLogin string, certificateID int64) (*domain.UserOrder, error) {
	var order domain.UserOrder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.FindByLogin(ctx, userLogin)
		if err != nil {
			return err
		}

		cert, err := s.certs.FindByID(ctx, certificateID)
		if err != nil {
			return err
		}

		order = domain.UserOrder{
			UserID:       user.ID,
			Certificate:  cert.Snapshot(),
			Price:        cert.Price,
			PurchaseDate: domain.Now(),
		}
		if err := s.orders.Create(ctx, &order); err != nil {
			return err
		}
		return s.audit.Record(ctx, domain.OpPersist, order)
	})
	if err != nil {
		return nil, err
	}

	notify(s.feed, domain.OpPersist, order)
	s.log.Info().
		Int64("order_id", order.ID).
		Int64("user_id", order.UserID).
		Int64("certificate_id", order.Certificate.ID).
		Int64("price", order.Price).
		Msg("order placed")
	return &order, nil
}

func (s *OrderService) GetAll(ctx context.Context, page ports.Pagination) ([]domain.UserOrder, error) {
	return s.orders.List(ctx, page)
}

func (s *OrderService) GetByID(ctx context.Context, id int64) (*domain.UserOrder, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) GetByUser(ctx context.Context, userID int64, page ports.Pagination) ([]domain.UserOrder, error) {
	return s.orders.ListByUser(ctx, userID, page)
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	var removed domain.UserOrder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		removed = *existing

		if err := s.audit.Record(ctx, domain.OpRemove, removed); err != nil {
			return err
		}
		return s.orders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	notify(s.feed, domain.OpRemove, removed)
	return nil
}
