package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// RoleRepository reads the role table. Roles are seeded by migration and
// never mutated through the API.
type RoleRepository struct {
	db  *DB
	log zerolog.Logger
}

func NewRoleRepository(db *DB, log zerolog.Logger) *RoleRepository {
	return &RoleRepository{db: db, log: log}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	query, args, err := qb.Select("id", "name").
		From("role").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select role: %w", err)
	}

	var role domain.Role
	row := r.db.conn(ctx).QueryRowContext(ctx, query, args...)
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: domain.ResourceRole}
		}
		return nil, fmt.Errorf("select role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context, page ports.Pagination) ([]domain.Role, error) {
	query, args, err := qb.Select("id", "name").
		From("role").
		OrderBy("id").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list roles: %w", err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
