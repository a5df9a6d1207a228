package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// OrderRepository persists orders. The bought certificate is stored as a
// JSONB snapshot column so later catalog changes never touch it.
type OrderRepository struct {
	db  *DB
	log zerolog.Logger
}

func NewOrderRepository(db *DB, log zerolog.Logger) *OrderRepository {
	return &OrderRepository{db: db, log: log}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.UserOrder) error {
	snapshot, err := json.Marshal(order.Certificate)
	if err != nil {
		return fmt.Errorf("marshal certificate snapshot: %w", err)
	}

	query, args, err := qb.Insert("user_order").
		Columns("user_id", "certificate_snapshot", "price", "purchase_date").
		Values(order.UserID, snapshot, order.Price, order.PurchaseDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert order: %w", err)
	}

	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&order.ID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.UserOrder, error) {
	query, args, err := r.selectOrders().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select order: %w", err)
	}

	row := r.db.conn(ctx).QueryRowContext(ctx, query, args...)
	order, err := scanOrderRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: domain.ResourceOrder}
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context, page ports.Pagination) ([]domain.UserOrder, error) {
	builder := r.selectOrders().
		OrderBy("id").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset()))
	return r.queryOrders(ctx, builder)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, page ports.Pagination) ([]domain.UserOrder, error) {
	builder := r.selectOrders().
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset()))
	return r.queryOrders(ctx, builder)
}

// ListAll returns every order without paging, for the spend aggregation.
func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.UserOrder, error) {
	return r.queryOrders(ctx, r.selectOrders().OrderBy("id"))
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.Delete("user_order").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete order: %w", err)
	}
	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: domain.ResourceOrder}
	}
	return nil
}

func (r *OrderRepository) selectOrders() sq.SelectBuilder {
	return qb.Select("id", "user_id", "certificate_snapshot", "price", "purchase_date").
		From("user_order")
}

func (r *OrderRepository) queryOrders(ctx context.Context, builder sq.SelectBuilder) ([]domain.UserOrder, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders: %w", err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.UserOrder
	for rows.Next() {
		order, err := scanOrderRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func scanOrderRow(scan func(dest ...any) error) (*domain.UserOrder, error) {
	var (
		order    domain.UserOrder
		snapshot []byte
	)
	if err := scan(&order.ID, &order.UserID, &snapshot, &order.Price, &order.PurchaseDate); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &order.Certificate); err != nil {
		return nil, fmt.Errorf("unmarshal certificate snapshot: %w", err)
	}
	return &order, nil
}
