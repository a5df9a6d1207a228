package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// TagService implements tag operations and the spend analytics query.
type TagService struct {
	tags   ports.TagRepository
	orders ports.OrderRepository
	audit  ports.AuditRecorder
	feed   ports.AuditFeed
	tx     ports.TxManager
	log    zerolog.Logger
}

func NewTagService(
	tags ports.TagRepository,
	orders ports.OrderRepository,
	audit ports.AuditRecorder,
	feed ports.AuditFeed,
	tx ports.TxManager,
	log zerolog.Logger,
) *TagService {
	return &TagService{tags: tags, orders: orders, audit: audit, feed: feed, tx: tx, log: log}
}

func (s *TagService) GetAll(ctx context.Context, page ports.Pagination) ([]domain.Tag, error) {
	return s.tags.List(ctx, page)
}

func (s *TagService) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.tags.FindByID(ctx, id)
}

func (s *TagService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, domain.RequiredFieldError{Field: "name"}
	}

	tag := &domain.Tag{Name: name}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.tags.Create(ctx, tag); err != nil {
			return err
		}
		return s.audit.Record(ctx, domain.OpPersist, *tag)
	})
	if err != nil {
		return nil, err
	}

	notify(s.feed, domain.OpPersist, *tag)
	s.log.Info().Int64("tag_id", tag.ID).Str("name", tag.Name).Msg("tag created")
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	var removed domain.Tag
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.tags.FindByID(ctx, id)
		if err != nil {
			return err
		}
		removed = *existing

		if err := s.audit.Record(ctx, domain.OpRemove, removed); err != nil {
			return err
		}
		return s.tags.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	notify(s.feed, domain.OpRemove, removed)
	return nil
}

// MostUsedTagsOfTopSpender finds the user(s) with the highest total order
// spend, pools their orders, and returns the tag(s) occurring most often in
// those orders' certificate snapshots. Spend ties pool users together; count
// ties return every winning tag. No orders means an empty result, not an
// error. Counting runs over the snapshots, so deleted tags still count for
// the orders that carried them.
func (s *TagService) MostUsedTagsOfTopSpender(ctx context.Context) ([]domain.Tag, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.Tag{}, nil
	}

	spend := make(map[int64]int64)
	for _, order := range orders {
		spend[order.UserID] += order.Price
	}

	var maxSpend int64
	for _, total := range spend {
		if total > maxSpend {
			maxSpend = total
		}
	}
	topUsers := make(map[int64]struct{})
	for userID, total := range spend {
		if total == maxSpend {
			topUsers[userID] = struct{}{}
		}
	}

	counts := make(map[string]int)
	byName := make(map[string]domain.Tag)
	for _, order := range orders {
		if _, ok := topUsers[order.UserID]; !ok {
			continue
		}
		for _, tag := range order.Certificate.Tags {
			counts[tag.Name]++
			byName[tag.Name] = tag
		}
	}
	if len(counts) == 0 {
		return []domain.Tag{}, nil
	}

	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	result := make([]domain.Tag, 0, 1)
	for name, n := range counts {
		if n == maxCount {
			result = append(result, byName[name])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
