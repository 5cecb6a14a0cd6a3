package repository

import (
	"context"

	"github.com/devlinkhq/devlink/internal/domain/entity"
)

// ProfileRepository loads and saves profile aggregates keyed by owner.
// Save persists the whole aggregate including the embedded experience and
// education collections; the load-mutate-save sequence is a single attempt
// with no retry on conflict.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	ListAll(ctx context.Context) ([]*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}
