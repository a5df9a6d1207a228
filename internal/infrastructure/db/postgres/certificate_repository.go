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

// CertificateRepository persists gift certificates and their tag links.
type CertificateRepository struct {
	db  *DB
	log zerolog.Logger
}

func NewCertificateRepository(db *DB, log zerolog.Logger) *CertificateRepository {
	return &CertificateRepository{db: db, log: log}
}

// Create inserts the certificate row and one gift_and_tag link per tag.
// Tag IDs must already be resolved by the caller.
func (r *CertificateRepository) Create(ctx context.Context, cert *domain.GiftCertificate) error {
	query, args, err := qb.Insert("gift_certificate").
		Columns("name", "description", "price", "duration", "create_date", "last_update_date").
		Values(cert.Name, cert.Description, cert.Price, cert.Duration, cert.CreateDate, cert.LastUpdateDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert certificate: %w", err)
	}

	if err := r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&cert.ID); err != nil {
		return fmt.Errorf("insert certificate: %w", err)
	}

	return r.replaceTagLinks(ctx, cert.ID, cert.Tags)
}

func (r *CertificateRepository) FindByID(ctx context.Context, id int64) (*domain.GiftCertificate, error) {
	query, args, err := qb.Select("id", "name", "description", "price", "duration", "create_date", "last_update_date").
		From("gift_certificate").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select certificate: %w", err)
	}

	var cert domain.GiftCertificate
	row := r.db.conn(ctx).QueryRowContext(ctx, query, args...)
	if err := row.Scan(&cert.ID, &cert.Name, &cert.Description, &cert.Price, &cert.Duration,
		&cert.CreateDate, &cert.LastUpdateDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: domain.ResourceCertificate}
		}
		return nil, fmt.Errorf("select certificate: %w", err)
	}

	tags, err := r.tagsOf(ctx, cert.ID)
	if err != nil {
		return nil, err
	}
	cert.Tags = tags
	return &cert, nil
}

// List returns a certificate page narrowed by the filter. Tag filtering
// joins through gift_and_tag; name and description filters are
// case-insensitive substring matches.
func (r *CertificateRepository) List(ctx context.Context, filter ports.CertificateFilter, page ports.Pagination) ([]domain.GiftCertificate, error) {
	builder := qb.Select("c.id", "c.name", "c.description", "c.price", "c.duration", "c.create_date", "c.last_update_date").
		From("gift_certificate c")

	if filter.TagName != "" {
		builder = builder.
			Join("gift_and_tag gt ON gt.certificate_id = c.id").
			Join("tag t ON t.id = gt.tag_id").
			Where(sq.Eq{"t.name": filter.TagName})
	}
	if filter.Name != "" {
		builder = builder.Where(sq.ILike{"c.name": "%" + filter.Name + "%"})
	}
	if filter.Description != "" {
		builder = builder.Where(sq.ILike{"c.description": "%" + filter.Description + "%"})
	}

	orderBy := "c.id"
	switch filter.SortBy {
	case "name":
		orderBy = "c.name"
	case "createDate":
		orderBy = "c.create_date"
	}
	if filter.Descending {
		orderBy += " DESC"
	}

	query, args, err := builder.
		OrderBy(orderBy).
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list certificates: %w", err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	var certs []domain.GiftCertificate
	for rows.Next() {
		var cert domain.GiftCertificate
		if err := rows.Scan(&cert.ID, &cert.Name, &cert.Description, &cert.Price, &cert.Duration,
			&cert.CreateDate, &cert.LastUpdateDate); err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}

	for i := range certs {
		tags, err := r.tagsOf(ctx, certs[i].ID)
		if err != nil {
			return nil, err
		}
		certs[i].Tags = tags
	}
	return certs, nil
}

// Update rewrites every certificate column and replaces the tag links.
func (r *CertificateRepository) Update(ctx context.Context, cert *domain.GiftCertificate) error {
	query, args, err := qb.Update("gift_certificate").
		Set("name", cert.Name).
		Set("description", cert.Description).
		Set("price", cert.Price).
		Set("duration", cert.Duration).
		Set("create_date", cert.CreateDate).
		Set("last_update_date", cert.LastUpdateDate).
		Where(sq.Eq{"id": cert.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update certificate: %w", err)
	}

	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: domain.ResourceCertificate}
	}

	if err := r.clearTagLinks(ctx, cert.ID); err != nil {
		return err
	}
	return r.replaceTagLinks(ctx, cert.ID, cert.Tags)
}

func (r *CertificateRepository) Delete(ctx context.Context, id int64) error {
	if err := r.clearTagLinks(ctx, id); err != nil {
		return err
	}

	query, args, err := qb.Delete("gift_certificate").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete certificate: %w", err)
	}
	res, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete certificate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: domain.ResourceCertificate}
	}
	return nil
}

func (r *CertificateRepository) tagsOf(ctx context.Context, certID int64) ([]domain.Tag, error) {
	query, args, err := qb.Select("t.id", "t.name").
		From("tag t").
		Join("gift_and_tag gt ON gt.tag_id = t.id").
		Where(sq.Eq{"gt.certificate_id": certID}).
		OrderBy("t.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select certificate tags: %w", err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select certificate tags: %w", err)
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

func (r *CertificateRepository) clearTagLinks(ctx context.Context, certID int64) error {
	query, args, err := qb.Delete("gift_and_tag").Where(sq.Eq{"certificate_id": certID}).ToSql()
	if err != nil {
		return fmt.Errorf("build clear tag links: %w", err)
	}
	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear tag links: %w", err)
	}
	return nil
}

func (r *CertificateRepository) replaceTagLinks(ctx context.Context, certID int64, tags []domain.Tag) error {
	for _, tag := range tags {
		query, args, err := qb.Insert("gift_and_tag").
			Columns("certificate_id", "tag_id").
			Values(certID, tag.ID).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert tag link: %w", err)
		}
		if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert tag link: %w", err)
		}
	}
	return nil
}
