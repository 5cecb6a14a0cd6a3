package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	repo "github.com/devlinkhq/devlink/internal/domain/repository"
	"github.com/devlinkhq/devlink/internal/interface/middleware"
	"github.com/devlinkhq/devlink/pkg/helpers"
	"github.com/devlinkhq/devlink/pkg/validation"
)

// In-memory repositories backing full request/response tests through the
// real handlers, middleware, and services.

type memUsers struct{ byID map[string]*entity.User }

func (s *memUsers) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	s.byID[u.ID] = u
	return nil
}
func (s *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}
func (s *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}
func (s *memUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := s.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	s.byID[u.ID] = u
	return nil
}
func (s *memUsers) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

type memProfiles struct {
	byUser map[string]*entity.Profile
	users  *memUsers
}

func (s *memProfiles) Create(_ context.Context, p *entity.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.byUser[p.UserID] = p
	return nil
}
func (s *memProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	p, ok := s.byUser[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if u, ok := s.users.byID[p.UserID]; ok {
		p.Owner = &entity.ProfileOwner{Name: u.Name, AvatarURL: u.AvatarURL}
	}
	return p, nil
}
func (s *memProfiles) ListAll(_ context.Context) ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(s.byUser))
	for _, p := range s.byUser {
		out = append(out, p)
	}
	return out, nil
}
func (s *memProfiles) Update(_ context.Context, p *entity.Profile) error {
	if _, ok := s.byUser[p.UserID]; !ok {
		return repo.ErrNotFound
	}
	s.byUser[p.UserID] = p
	return nil
}
func (s *memProfiles) DeleteByUserID(_ context.Context, userID string) error {
	delete(s.byUser, userID)
	return nil
}

type memPosts struct{ posts []*entity.Post }

func (s *memPosts) Create(_ context.Context, p *entity.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	s.posts = append(s.posts, p)
	return nil
}
func (s *memPosts) GetByID(_ context.Context, id string) (*entity.Post, error) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repo.ErrNotFound
}
func (s *memPosts) ListAll(_ context.Context) ([]*entity.Post, error) {
	out := make([]*entity.Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		out = append(out, s.posts[i])
	}
	return out, nil
}
func (s *memPosts) Update(_ context.Context, p *entity.Post) error {
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			s.posts[i] = p
			return nil
		}
	}
	return repo.ErrNotFound
}
func (s *memPosts) Delete(_ context.Context, id string) error {
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}
func (s *memPosts) DeleteByUserID(_ context.Context, userID string) error {
	kept := s.posts[:0]
	for _, p := range s.posts {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	return nil
}

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &memUsers{byID: map[string]*entity.User{}}
	profiles := &memProfiles{byUser: map[string]*entity.Profile{}, users: users}
	posts := &memPosts{}
	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	userSvc := application.NewUserService(users, jwt, nil, "", nil, logger)
	profileSvc := application.NewProfileService(profiles, posts, users, logger, nil, "")
	postSvc := application.NewPostService(posts, users, logger)
	githubSvc := application.NewGithubService(nil, "", time.Minute, logger)

	userH := NewUserHandler(userSvc, logger)
	authH := NewAuthHandler(userSvc, logger)
	profileH := NewProfileHandler(profileSvc, githubSvc, logger)
	postH := NewPostHandler(postSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	auth := middleware.Auth(jwt)

	api.POST("/users", userH.Register)
	api.GET("/auth", authH.Ping)
	api.POST("/auth", authH.Login)
	api.POST("/auth/refresh", authH.Refresh)
	api.GET("/auth/me", auth, authH.Me)

	api.GET("/profile", profileH.ListAll)
	api.GET("/profile/user/:userid", profileH.GetByUser)
	api.GET("/profile/me", auth, profileH.GetMine)
	api.POST("/profile", auth, profileH.Upsert)
	api.DELETE("/profile", auth, profileH.DeleteMine)
	api.PUT("/profile/experience", auth, profileH.AddExperience)
	api.DELETE("/profile/experience/:expid", auth, profileH.RemoveExperience)
	api.PUT("/profile/education", auth, profileH.AddEducation)
	api.DELETE("/profile/education/:eduid", auth, profileH.RemoveEducation)

	api.POST("/posts", auth, postH.Create)
	api.GET("/posts", auth, postH.ListAll)
	api.GET("/posts/:id", auth, postH.GetByID)
	api.DELETE("/posts/:id", auth, postH.Delete)
	api.PUT("/posts/like/:id", auth, postH.Like)
	api.PUT("/posts/unlike/:id", auth, postH.Unlike)
	api.POST("/posts/comment/:id", auth, postH.AddComment)
	api.DELETE("/posts/comment/:id/:comment_id", auth, postH.RemoveComment)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/users", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Token == "" {
		t.Fatal("register returned no token")
	}
	return body.Token
}

func TestRegisterLoginMeFlow(t *testing.T) {
	r := setupAPI(t)
	token := register(t, r, "Jane Dev", "jane@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", w.Code, w.Body.String())
	}
	var me entity.User
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatal(err)
	}
	if me.Email != "jane@example.com" {
		t.Errorf("me email = %q", me.Email)
	}
	if w.Body.String() != "" && bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Error("password leaked in /auth/me response")
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth", "", gin.H{"email": "jane@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth", "", gin.H{"email": "jane@example.com", "password": "wrongpass"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad login status = %d, want 400", w.Code)
	}
}

func TestRegisterValidationAndDuplicate(t *testing.T) {
	r := setupAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", "", gin.H{"name": "X", "email": "not-an-email", "password": "secret123"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Errors []struct {
			Param string `json:"param"`
			Msg   string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Errors) == 0 || body.Errors[0].Param != "email" {
		t.Errorf("errors = %v", body.Errors)
	}

	register(t, r, "Jane", "jane@example.com")
	w = doJSON(t, r, http.MethodPost, "/api/users", "", gin.H{"name": "Dup", "email": "jane@example.com", "password": "secret123"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate status = %d, want 400", w.Code)
	}
}

func TestProfileFlow(t *testing.T) {
	r := setupAPI(t)
	token := register(t, r, "Jane", "jane@example.com")

	// No profile yet.
	w := doJSON(t, r, http.MethodGet, "/api/profile/me", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("empty profile status = %d, want 404, body = %s", w.Code, w.Body.String())
	}

	// Missing status/skills is rejected with the full violation list.
	w = doJSON(t, r, http.MethodPost, "/api/profile", token, gin.H{"company": "Acme"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid upsert status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/profile", token, gin.H{
		"status": "Developer", "skills": "Go, SQL", "company": "Acme",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upsert status = %d, body = %s", w.Code, w.Body.String())
	}
	var p entity.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Skills) != 2 || p.Owner == nil {
		t.Errorf("profile = %+v", p)
	}

	// Experience add and remove through the API.
	w = doJSON(t, r, http.MethodPut, "/api/profile/experience", token, gin.H{
		"title": "Senior Dev", "company": "Acme", "from": "2021-01-01", "current": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add experience status = %d, body = %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Experience) != 1 || p.Experience[0].Title != "Senior Dev" {
		t.Fatalf("experience = %v", p.Experience)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/profile/experience/"+p.Experience[0].ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove experience status = %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Experience) != 0 {
		t.Errorf("experience not removed: %v", p.Experience)
	}
}

func TestPostLikeCommentFlow(t *testing.T) {
	r := setupAPI(t)
	author := register(t, r, "Author", "author@example.com")
	reader := register(t, r, "Reader", "reader@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/posts", author, gin.H{"text": "hello world"})
	if w.Code != http.StatusOK {
		t.Fatalf("create post status = %d, body = %s", w.Code, w.Body.String())
	}
	var p entity.Post
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Name != "Author" {
		t.Errorf("author snapshot missing: %+v", p)
	}

	w = doJSON(t, r, http.MethodPut, "/api/posts/like/"+p.ID, reader, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("like status = %d, body = %s", w.Code, w.Body.String())
	}
	var likes []entity.Like
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil {
		t.Fatal(err)
	}
	if len(likes) != 1 {
		t.Fatalf("likes = %v", likes)
	}

	w = doJSON(t, r, http.MethodPut, "/api/posts/like/"+p.ID, reader, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("double like status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/posts/unlike/"+p.ID, reader, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unlike status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/posts/comment/"+p.ID, reader, gin.H{"text": "nice"})
	if w.Code != http.StatusOK {
		t.Fatalf("comment status = %d, body = %s", w.Code, w.Body.String())
	}
	var comments []entity.Comment
	if err := json.Unmarshal(w.Body.Bytes(), &comments); err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 || comments[0].Name != "Reader" {
		t.Fatalf("comments = %v", comments)
	}

	// Only the comment author may remove it.
	w = doJSON(t, r, http.MethodDelete, "/api/posts/comment/"+p.ID+"/"+comments[0].ID, author, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign comment removal status = %d, want 403", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/posts/comment/"+p.ID+"/"+comments[0].ID, reader, nil)
	if w.Code != http.StatusOK {
		t.Errorf("comment removal status = %d", w.Code)
	}

	// Only the post author may delete the post.
	w = doJSON(t, r, http.MethodDelete, "/api/posts/"+p.ID, reader, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign post delete status = %d, want 403", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/posts/"+p.ID, author, nil)
	if w.Code != http.StatusOK {
		t.Errorf("post delete status = %d", w.Code)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	r := setupAPI(t)
	token := register(t, r, "Jane", "jane@example.com")

	doJSON(t, r, http.MethodPost, "/api/profile", token, gin.H{"status": "Dev", "skills": "Go"})
	doJSON(t, r, http.MethodPost, "/api/posts", token, gin.H{"text": "soon gone"})

	w := doJSON(t, r, http.MethodDelete, "/api/profile", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", w.Code, w.Body.String())
	}

	// Token still verifies (stateless), but the account is gone.
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("me after delete status = %d, want 404", w.Code)
	}
}

func TestUnknownPostIs404(t *testing.T) {
	r := setupAPI(t)
	token := register(t, r, "Jane", "jane@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/posts/"+uuid.NewString(), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown post status = %d, want 404", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/posts/not-a-uuid", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("malformed id status = %d, want 404", w.Code)
	}
}
