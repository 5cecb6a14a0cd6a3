package application

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	repo "github.com/devlinkhq/devlink/internal/domain/repository"
)

// In-memory repository stubs for service tests. They mirror the real
// persistence contract: ids assigned on create, repo.ErrNotFound on misses,
// newest-first listing.

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type userRepoStub struct {
	byID map[string]*entity.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{byID: map[string]*entity.User{}}
}

func (s *userRepoStub) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.byID[u.ID] = u
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *userRepoStub) Update(_ context.Context, u *entity.User) error {
	if _, ok := s.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	s.byID[u.ID] = u
	return nil
}

func (s *userRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

type profileRepoStub struct {
	byUser map[string]*entity.Profile
	users  *userRepoStub
}

func newProfileRepoStub(users *userRepoStub) *profileRepoStub {
	return &profileRepoStub{byUser: map[string]*entity.Profile{}, users: users}
}

func (s *profileRepoStub) attachOwner(p *entity.Profile) {
	if s.users == nil {
		return
	}
	if u, ok := s.users.byID[p.UserID]; ok {
		p.Owner = &entity.ProfileOwner{Name: u.Name, AvatarURL: u.AvatarURL}
	}
}

func (s *profileRepoStub) Create(_ context.Context, p *entity.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.byUser[p.UserID] = p
	return nil
}

func (s *profileRepoStub) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	p, ok := s.byUser[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	s.attachOwner(p)
	return p, nil
}

func (s *profileRepoStub) ListAll(_ context.Context) ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(s.byUser))
	for _, p := range s.byUser {
		s.attachOwner(p)
		out = append(out, p)
	}
	return out, nil
}

func (s *profileRepoStub) Update(_ context.Context, p *entity.Profile) error {
	if _, ok := s.byUser[p.UserID]; !ok {
		return repo.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	s.byUser[p.UserID] = p
	return nil
}

func (s *profileRepoStub) DeleteByUserID(_ context.Context, userID string) error {
	delete(s.byUser, userID)
	return nil
}

type postRepoStub struct {
	posts []*entity.Post
}

func newPostRepoStub() *postRepoStub { return &postRepoStub{} }

func (s *postRepoStub) Create(_ context.Context, p *entity.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	s.posts = append(s.posts, p)
	return nil
}

func (s *postRepoStub) GetByID(_ context.Context, id string) (*entity.Post, error) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *postRepoStub) ListAll(_ context.Context) ([]*entity.Post, error) {
	out := make([]*entity.Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		out = append(out, s.posts[i])
	}
	return out, nil
}

func (s *postRepoStub) Update(_ context.Context, p *entity.Post) error {
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			s.posts[i] = p
			return nil
		}
	}
	return repo.ErrNotFound
}

func (s *postRepoStub) Delete(_ context.Context, id string) error {
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (s *postRepoStub) DeleteByUserID(_ context.Context, userID string) error {
	kept := s.posts[:0]
	for _, p := range s.posts {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	return nil
}
