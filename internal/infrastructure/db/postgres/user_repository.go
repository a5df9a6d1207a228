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

// UserRepository persists accounts in the users / user_role tables.
type UserRepository struct {
	db  *DB
	log zerolog.Logger
}

func NewUserRepository(db *DB, log zerolog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// Create inserts the account and its role assignments. A login collision
// maps to domain.AlreadyExistsError.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	q := r.db.conn(ctx)

	query, args, err := qb.Insert("users").
		Columns("login", "password_hash").
		Values(user.Login, user.PasswordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.AlreadyExistsError{Resource: domain.ResourceUser}
		}
		return fmt.Errorf("insert user: %w", err)
	}

	for _, role := range user.Roles {
		query, args, err := qb.Insert("user_role").
			Columns("user_id", "role_id").
			Values(user.ID, role.ID).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert user_role: %w", err)
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert user_role: %w", err)
		}
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"login": login})
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (*domain.User, error) {
	query, args, err := qb.Select("id", "login", "password_hash").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	var user domain.User
	row := r.db.conn(ctx).QueryRowContext(ctx, query, args...)
	if err := row.Scan(&user.ID, &user.Login, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: domain.ResourceUser}
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	roles, err := r.rolesOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, page ports.Pagination) ([]domain.User, error) {
	query, args, err := qb.Select("id", "login", "password_hash").
		From("users").
		OrderBy("id").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users: %w", err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Login, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	for i := range users {
		roles, err := r.rolesOf(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Roles = roles
	}
	return users, nil
}

// Delete removes the account and its role links. Missing id maps to
// domain.NotFoundError.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.conn(ctx)

	query, args, err := qb.Delete("user_role").Where(sq.Eq{"user_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete user_role: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user_role: %w", err)
	}

	query, args, err = qb.Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete user: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: domain.ResourceUser}
	}
	return nil
}

func (r *UserRepository) rolesOf(ctx context.Context, userID int64) ([]domain.Role, error) {
	query, args, err := qb.Select("r.id", "r.name").
		From("role r").
		Join("user_role ur ON ur.role_id = r.id").
		Where(sq.Eq{"ur.user_id": userID}).
		OrderBy("r.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select roles: %w", err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select roles: %w", err)
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
