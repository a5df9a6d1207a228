package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

func TestOrderRepository_Create_MarshalsSnapshot(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewOrderRepository(db, zerolog.Nop())

	order := &domain.UserOrder{
		UserID: 2,
		Certificate: domain.GiftCertificate{
			ID:    5,
			Name:  "spa day",
			Price: 2500,
			Tags:  []domain.Tag{{ID: 1, Name: "spa"}},
		},
		Price:        2500,
		PurchaseDate: domain.Now(),
	}
	snapshot, err := json.Marshal(order.Certificate)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO user_order").
		WithArgs(order.UserID, snapshot, order.Price, order.PurchaseDate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))

	require.NoError(t, repo.Create(context.Background(), order))
	assert.Equal(t, int64(77), order.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindByID_UnmarshalsSnapshot(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewOrderRepository(db, zerolog.Nop())

	snapshot := `{"id":5,"name":"spa day","description":"a relaxing day","price":2500,"duration":30,` +
		`"createDate":"2024-01-01 09:00:00","lastUpdateDate":"2024-01-01 09:00:00","tags":[{"id":1,"name":"spa"}]}`
	purchased := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)

	mock.ExpectQuery("SELECT id, user_id, certificate_snapshot, price, purchase_date FROM user_order").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "certificate_snapshot", "price", "purchase_date"}).
			AddRow(77, 2, []byte(snapshot), 2500, purchased))

	order, err := repo.FindByID(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, int64(5), order.Certificate.ID)
	assert.Equal(t, "spa day", order.Certificate.Name)
	require.Len(t, order.Certificate.Tags, 1)
	assert.Equal(t, "spa", order.Certificate.Tags[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewOrderRepository(db, zerolog.Nop())

	mock.ExpectQuery("SELECT id, user_id, certificate_snapshot, price, purchase_date FROM user_order").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "certificate_snapshot", "price", "purchase_date"}))

	_, err := repo.FindByID(context.Background(), 404)
	var notFound domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.ResourceOrder, notFound.Resource)
}
