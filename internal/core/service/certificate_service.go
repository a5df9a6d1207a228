package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// CertificateService implements catalog operations on gift certificates.
// Every mutation runs in a single transaction together with its audit
// record; the read cache is invalidated after commit.
type CertificateService struct {
	certs ports.CertificateRepository
	tags  ports.TagRepository
	audit ports.AuditRecorder
	feed  ports.AuditFeed
	cache ports.CertificateCache
	tx    ports.TxManager
	log   zerolog.Logger
}

func NewCertificateService(
	certs ports.CertificateRepository,
	tags ports.TagRepository,
	audit ports.AuditRecorder,
	feed ports.AuditFeed,
	cache ports.CertificateCache,
	tx ports.TxManager,
	log zerolog.Logger,
) *CertificateService {
	return &CertificateService{
		certs: certs,
		tags:  tags,
		audit: audit,
		feed:  feed,
		cache: cache,
		tx:    tx,
		log:   log,
	}
}

func (s *CertificateService) GetAll(ctx context.Context, filter ports.CertificateFilter, page ports.Pagination) ([]domain.GiftCertificate, error) {
	return s.certs.List(ctx, filter, page)
}

// GetByID serves reads through the cache when one is configured.
func (s *CertificateService) GetByID(ctx context.Context, id int64) (*domain.GiftCertificate, error) {
	if s.cache != nil {
		if cert, ok := s.cache.Get(ctx, id); ok {
			return cert, nil
		}
	}

	cert, err := s.certs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, cert)
	}
	return cert, nil
}

func (s *CertificateService) Create(ctx context.Context, input ports.CreateCertificateInput) (*domain.GiftCertificate, error) {
	if err := validateCertificateInput(input); err != nil {
		return nil, err
	}

	now := domain.Now()
	cert := &domain.GiftCertificate{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Duration:       input.Duration,
		CreateDate:     now,
		LastUpdateDate: now,
	}

	var createdTags []domain.Tag
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tags, created, err := s.resolveTags(ctx, input.Tags)
		if err != nil {
			return err
		}
		cert.Tags = tags
		createdTags = created

		if err := s.certs.Create(ctx, cert); err != nil {
			return err
		}
		return s.audit.Record(ctx, domain.OpPersist, *cert)
	})
	if err != nil {
		return nil, err
	}

	for _, tag := range createdTags {
		notify(s.feed, domain.OpPersist, tag)
	}
	notify(s.feed, domain.OpPersist, *cert)
	s.log.Info().Int64("certificate_id", cert.ID).Str("name", cert.Name).Msg("certificate created")
	return cert, nil
}

// Update replaces every certificate attribute (PUT semantics) and refreshes
// lastUpdateDate.
func (s *CertificateService) Update(ctx context.Context, id int64, input ports.CreateCertificateInput) (*domain.GiftCertificate, error) {
	if err := validateCertificateInput(input); err != nil {
		return nil, err
	}

	var (
		cert        *domain.GiftCertificate
		createdTags []domain.Tag
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.certs.FindByID(ctx, id)
		if err != nil {
			return err
		}

		tags, created, err := s.resolveTags(ctx, input.Tags)
		if err != nil {
			return err
		}
		createdTags = created

		existing.Name = input.Name
		existing.Description = input.Description
		existing.Price = input.Price
		existing.Duration = input.Duration
		existing.LastUpdateDate = domain.Now()
		existing.Tags = tags

		if err := s.audit.Record(ctx, domain.OpUpdate, *existing); err != nil {
			return err
		}
		if err := s.certs.Update(ctx, existing); err != nil {
			return err
		}
		cert = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	for _, tag := range createdTags {
		notify(s.feed, domain.OpPersist, tag)
	}
	notify(s.feed, domain.OpUpdate, *cert)
	return cert, nil
}

// Patch applies a partial update. Only set fields change; a set field is
// validated by the creation rules. lastUpdateDate is refreshed whenever any
// other field changed, unless the patch pins it explicitly.
func (s *CertificateService) Patch(ctx context.Context, id int64, patch ports.CertificatePatch) (*domain.GiftCertificate, error) {
	var cert *domain.GiftCertificate
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.certs.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			cert = existing
			return nil
		}

		changed, err := applyCertificatePatch(existing, patch)
		if err != nil {
			return err
		}
		if changed && patch.LastUpdateDate == nil {
			existing.LastUpdateDate = domain.Now()
		}

		if err := s.audit.Record(ctx, domain.OpUpdate, *existing); err != nil {
			return err
		}
		if err := s.certs.Update(ctx, existing); err != nil {
			return err
		}
		cert = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		s.invalidate(ctx, id)
		notify(s.feed, domain.OpUpdate, *cert)
	}
	return cert, nil
}

func (s *CertificateService) Delete(ctx context.Context, id int64) error {
	var removed domain.GiftCertificate
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.certs.FindByID(ctx, id)
		if err != nil {
			return err
		}
		removed = *existing

		if err := s.audit.Record(ctx, domain.OpRemove, removed); err != nil {
			return err
		}
		return s.certs.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	notify(s.feed, domain.OpRemove, removed)
	s.log.Info().Int64("certificate_id", id).Msg("certificate deleted")
	return nil
}

// resolveTags maps tag names onto persisted tags, creating missing ones.
// Created tags get their own audit records inside the same transaction.
func (s *CertificateService) resolveTags(ctx context.Context, names []string) (resolved, created []domain.Tag, err error) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tags.FindByName(ctx, name)
		if err != nil {
			var notFound domain.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, err
			}
			fresh := domain.Tag{Name: name}
			if err := s.tags.Create(ctx, &fresh); err != nil {
				return nil, nil, err
			}
			if err := s.audit.Record(ctx, domain.OpPersist, fresh); err != nil {
				return nil, nil, err
			}
			created = append(created, fresh)
			tag = &fresh
		}
		resolved = append(resolved, *tag)
	}
	return resolved, created, nil
}

func (s *CertificateService) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

func validateCertificateInput(input ports.CreateCertificateInput) error {
	if input.Name == "" {
		return domain.RequiredFieldError{Field: "name"}
	}
	if input.Description == "" {
		return domain.RequiredFieldError{Field: "description"}
	}
	if input.Price <= 0 {
		return domain.ValidationError{Field: "price", Reason: "must be a positive integer"}
	}
	if input.Duration <= 0 {
		return domain.ValidationError{Field: "duration", Reason: "must be a positive integer"}
	}
	return nil
}

// applyCertificatePatch mutates cert in place and reports whether any field
// other than lastUpdateDate changed.
func applyCertificatePatch(cert *domain.GiftCertificate, patch ports.CertificatePatch) (bool, error) {
	changed := false

	if patch.Name != nil {
		if *patch.Name == "" {
			return false, domain.ValidationError{Field: "name", Reason: "must not be empty"}
		}
		cert.Name = *patch.Name
		changed = true
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return false, domain.ValidationError{Field: "description", Reason: "must not be empty"}
		}
		cert.Description = *patch.Description
		changed = true
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return false, domain.ValidationError{Field: "price", Reason: "must be a positive integer"}
		}
		cert.Price = *patch.Price
		changed = true
	}
	if patch.Duration != nil {
		if *patch.Duration <= 0 {
			return false, domain.ValidationError{Field: "duration", Reason: "must be a positive integer"}
		}
		cert.Duration = *patch.Duration
		changed = true
	}
	if patch.CreateDate != nil {
		parsed, err := domain.ParseDateTime(*patch.CreateDate)
		if err != nil {
			return false, domain.ValidationError{Field: "createDate", Reason: "must match " + domain.DateTimeLayout}
		}
		cert.CreateDate = parsed
		changed = true
	}
	if patch.LastUpdateDate != nil {
		parsed, err := domain.ParseDateTime(*patch.LastUpdateDate)
		if err != nil {
			return false, domain.ValidationError{Field: "lastUpdateDate", Reason: "must match " + domain.DateTimeLayout}
		}
		cert.LastUpdateDate = parsed
	}

	return changed, nil
}
