package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/pkg/helpers"
)

// GithubService proxies the public GitHub repo listing for a username and
// caches responses in Redis so repeated profile views don't burn API quota.
type GithubService struct {
	HTTP     *http.Client
	Redis    *redis.Client
	BaseURL  string
	Token    string
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

func NewGithubService(rdb *redis.Client, token string, cacheTTL time.Duration, logger *logrus.Logger) *GithubService {
	return &GithubService{
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Redis:    rdb,
		BaseURL:  "https://api.github.com",
		Token:    token,
		CacheTTL: cacheTTL,
		Logger:   logger,
	}
}

func githubCacheKey(username string) string {
	return "github:repos:" + username
}

// Repos returns the 5 most recent public repos for username as raw JSON.
// A non-200 upstream answer maps to ErrNotFound.
func (s *GithubService) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	key := githubCacheKey(username)
	if s.Redis != nil {
		var cached json.RawMessage
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", s.BaseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devlink")
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	res, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, ErrNotFound
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("github: invalid response body")
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, json.RawMessage(body), s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Warn("github cache write failed")
		}
	}
	return body, nil
}
