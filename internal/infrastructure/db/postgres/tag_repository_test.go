package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewDB(conn, zerolog.Nop()), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestTagRepository_Create(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTagRepository(db, zerolog.Nop())

	mock.ExpectQuery("INSERT INTO tag").
		WithArgs("spa").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	tag := &domain.Tag{Name: "spa"}
	require.NoError(t, repo.Create(context.Background(), tag))
	assert.Equal(t, int64(7), tag.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_Create_Duplicate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTagRepository(db, zerolog.Nop())

	mock.ExpectQuery("INSERT INTO tag").
		WithArgs("spa").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.Create(context.Background(), &domain.Tag{Name: "spa"})
	var exists domain.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, domain.ResourceTag, exists.Resource)
}

func TestTagRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTagRepository(db, zerolog.Nop())

	mock.ExpectQuery("SELECT id, name FROM tag").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.FindByID(context.Background(), 404)
	var notFound domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.ResourceTag, notFound.Resource)
}

func TestTagRepository_List_AppliesWindow(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTagRepository(db, zerolog.Nop())

	mock.ExpectQuery("SELECT id, name FROM tag ORDER BY id LIMIT 5 OFFSET 10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(11, "spa").
			AddRow(12, "wellness"))

	page, err := ports.NewPagination(3, 5)
	require.NoError(t, err)

	tags, err := repo.List(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "spa", tags[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_Delete_ClearsLinksFirst(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTagRepository(db, zerolog.Nop())

	mock.ExpectExec("DELETE FROM gift_and_tag").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM tag").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_Delete_Missing(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewTagRepository(db, zerolog.Nop())

	mock.ExpectExec("DELETE FROM gift_and_tag").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM tag").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)
	var notFound domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgError(pgerrcode.UniqueViolation)))
	assert.False(t, isUniqueViolation(pgError(pgerrcode.ForeignKeyViolation)))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
}
