package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	repo "github.com/devlinkhq/devlink/internal/domain/repository"
)

// PostService orchestrates post aggregates and their embedded like/comment
// collections. Every mutation is a single load-mutate-save attempt; a failed
// save is reported to the caller with no retry.
type PostService struct {
	Posts  repo.PostRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger}
}

// Create validates text and snapshots the caller's current name/avatar onto
// the post. The snapshot is intentionally not re-synced on later profile
// changes.
func (s *PostService) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	if verr := requireFields("text", text); verr != nil {
		return nil, verr
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p := &entity.Post{
		UserID:    u.ID,
		Text:      text,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListAll returns all posts, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]*entity.Post, error) {
	return s.Posts.ListAll(ctx)
}

// GetByID loads a post; a malformed id reads as "no such post".
func (s *PostService) GetByID(ctx context.Context, postID string) (*entity.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, ErrNotFound
	}
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// DeleteByID removes a post after confirming the caller is its author.
func (s *PostService) DeleteByID(ctx context.Context, userID, postID string) error {
	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrForbidden
	}
	return s.Posts.Delete(ctx, postID)
}

// Like records a like for the caller; at most one like per user per post.
func (s *PostService) Like(ctx context.Context, userID, postID string) (*entity.Post, error) {
	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.Like(userID) {
		return nil, ErrAlreadyLiked
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Unlike removes the caller's like.
func (s *PostService) Unlike(ctx context.Context, userID, postID string) (*entity.Post, error) {
	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.Unlike(userID) {
		return nil, ErrNotLiked
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddComment validates text, snapshots the caller's name/avatar, and
// prepends the comment.
func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) (*entity.Post, error) {
	if verr := requireFields("text", text); verr != nil {
		return nil, verr
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	p.AddComment(entity.Comment{
		UserID:    u.ID,
		Text:      text,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	})
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveComment removes the targeted comment after confirming the caller
// authored it. Removal is strictly by the addressed comment id, so an author
// with several comments on the same post always loses the right one.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID string) (*entity.Post, error) {
	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	c, ok := p.CommentByID(commentID)
	if !ok {
		return nil, ErrNotFound
	}
	if c.UserID != userID {
		return nil, ErrForbidden
	}
	p.RemoveComment(commentID)
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
