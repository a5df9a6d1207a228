package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// UserService implements account listing and removal plus the role catalog.
// Account creation lives in AuthService.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	audit ports.AuditRecorder
	feed  ports.AuditFeed
	tx    ports.TxManager
	log   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	audit ports.AuditRecorder,
	feed ports.AuditFeed,
	tx ports.TxManager,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, roles: roles, audit: audit, feed: feed, tx: tx, log: log}
}

func (s *UserService) GetAll(ctx context.Context, page ports.Pagination) ([]domain.User, error) {
	return s.users.List(ctx, page)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	var removed domain.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.users.FindByID(ctx, id)
		if err != nil {
			return err
		}
		removed = *existing

		if err := s.audit.Record(ctx, domain.OpRemove, removed); err != nil {
			return err
		}
		return s.users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	notify(s.feed, domain.OpRemove, removed)
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// GetRoles lists the role catalog from the role table.
func (s *UserService) GetRoles(ctx context.Context, page ports.Pagination) ([]domain.Role, error) {
	return s.roles.List(ctx, page)
}
