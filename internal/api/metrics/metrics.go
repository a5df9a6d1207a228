// Package metrics defines and registers all custom Prometheus metrics for
// the gift certificate catalog. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// AuthAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// OrdersPlacedTotal counts successfully placed orders.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// AuditRecordsTotal counts committed audit journal entries, observed by the
// journal dispatcher after commit.
// Labels:
//   - kind: audited entity kind (User, Tag, GiftCertificate, UserOrder)
//   - operation: PERSIST, UPDATE or REMOVE
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of committed audit records, by entity kind and operation.",
	},
	[]string{"kind", "operation"},
)

// CertificateCacheTotal counts certificate cache lookups.
// Label:
//   - result: "hit" or "miss"
var CertificateCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "certificate_cache_total",
		Help:      "Total number of certificate cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
