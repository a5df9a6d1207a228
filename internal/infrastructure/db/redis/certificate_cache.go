package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/api/metrics"
	"github.com/giftvault/catalog-api/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// CertificateCache is a read-through cache for public certificate lookups.
// Cache failures are logged and treated as misses; the database remains the
// source of truth.
type CertificateCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCertificateCache wraps the given client. A non-positive ttl falls back
// to five minutes.
func NewCertificateCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *CertificateCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CertificateCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached certificate and whether it was present.
func (c *CertificateCache) Get(ctx context.Context, id int64) (*domain.GiftCertificate, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Int64("certificate_id", id).Msg("certificate cache read failed")
		}
		metrics.CertificateCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var cert domain.GiftCertificate
	if err := json.Unmarshal(raw, &cert); err != nil {
		c.log.Warn().Err(err).Int64("certificate_id", id).Msg("certificate cache entry corrupt")
		_ = c.client.Del(ctx, c.key(id)).Err()
		metrics.CertificateCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CertificateCacheTotal.WithLabelValues("hit").Inc()
	return &cert, true
}

// Set stores the certificate for the configured TTL.
func (c *CertificateCache) Set(ctx context.Context, cert *domain.GiftCertificate) {
	raw, err := json.Marshal(cert)
	if err != nil {
		c.log.Warn().Err(err).Int64("certificate_id", cert.ID).Msg("certificate cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, c.key(cert.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Int64("certificate_id", cert.ID).Msg("certificate cache write failed")
	}
}

// Invalidate drops the cached entry after a mutation.
func (c *CertificateCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Int64("certificate_id", id).Msg("certificate cache invalidation failed")
	}
}

func (c *CertificateCache) key(id int64) string {
	return fmt.Sprintf("gift:%d", id)
}
