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

// TagRepository persists tags in the tag table.
type TagRepository struct {
	db  *DB
	log zerolog.Logger
}

func NewTagRepository(db *DB, log zerolog.Logger) *TagRepository {
	return &TagRepository{db: db, log: log}
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query, args, err := qb.Insert("tag").
		Columns("name").
		Values(tag.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert tag: %w", err)
	}

	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&tag.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.AlreadyExistsError{Resource: domain.ResourceTag}
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func (r *TagRepository) FindByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	return r.findOne(ctx, sq.Eq{"name": name})
}

func (r *TagRepository) findOne(ctx context.Context, where sq.Eq) (*domain.Tag, error) {
	query, args, err := qb.Select("id", "name").
		From("tag").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tag: %w", err)
	}

	var tag domain.Tag
	row := r.db.conn(ctx).QueryRowContext(ctx, query, args...)
	if err := row.Scan(&tag.ID, &tag.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: domain.ResourceTag}
		}
		return nil, fmt.Errorf("select tag: %w", err)
	}
	return &tag, nil
}

func (r *TagRepository) List(ctx context.Context, page ports.Pagination) ([]domain.Tag, error) {
	query, args, err := qb.Select("id", "name").
		From("tag").
		OrderBy("id").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tags: %w", err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Delete removes the tag and its certificate links.
func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	q := r.db.conn(ctx)

	query, args, err := qb.Delete("gift_and_tag").Where(sq.Eq{"tag_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete gift_and_tag: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete gift_and_tag: %w", err)
	}

	query, args, err = qb.Delete("tag").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete tag: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: domain.ResourceTag}
	}
	return nil
}
