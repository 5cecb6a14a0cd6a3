package repository

import (
	"context"

	"github.com/devlinkhq/devlink/internal/domain/entity"
)

// PostRepository loads and saves post aggregates. Update persists the whole
// aggregate including the embedded likes and comments collections.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	ListAll(ctx context.Context) ([]*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
