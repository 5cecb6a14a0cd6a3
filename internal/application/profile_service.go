package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	repo "github.com/devlinkhq/devlink/internal/domain/repository"
)

// ProfileService orchestrates the owner-scoped profile aggregate: partial
// upserts, the embedded experience/education collections, and the cascade
// delete of everything a user owns.
type ProfileService struct {
	Profiles repo.ProfileRepository
	Posts    repo.PostRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger

	ES              *elasticsearch.Client
	ESProfilesIndex string
}

func NewProfileService(profiles repo.ProfileRepository, posts repo.PostRepository, users repo.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ProfileService {
	return &ProfileService{Profiles: profiles, Posts: posts, Users: users, Logger: logger, ES: es, ESProfilesIndex: esIndex}
}

// ProfilePatch carries only the fields present in the request; nil means
// "leave untouched". Skills is the raw comma-delimited string.
type ProfilePatch struct {
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Bio            *string
	GithubUsername *string
	Skills         *string
	Twitter        *string
	Facebook       *string
	LinkedIn       *string
	YouTube        *string
	Instagram      *string
}

// GetOwn loads the caller's profile.
func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Upsert applies the patch onto the stored profile, creating one when the
// caller has none. Status and skills are always required; other absent
// fields stay untouched on update.
func (s *ProfileService) Upsert(ctx context.Context, userID string, patch ProfilePatch) (*entity.Profile, error) {
	var violations []FieldViolation
	if patch.Status == nil || strings.TrimSpace(*patch.Status) == "" {
		violations = append(violations, FieldViolation{Field: "status", Message: "status is required"})
	}
	if patch.Skills == nil || len(ParseSkills(*patch.Skills)) == 0 {
		violations = append(violations, FieldViolation{Field: "skills", Message: "skills are required"})
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	p, err := s.Profiles.GetByUserID(ctx, userID)
	created := false
	if errors.Is(err, repo.ErrNotFound) {
		p = &entity.Profile{UserID: userID}
		created = true
	} else if err != nil {
		return nil, err
	}

	applyPatch(p, patch)

	if created {
		err = s.Profiles.Create(ctx, p)
	} else {
		err = s.Profiles.Update(ctx, p)
	}
	if err != nil {
		return nil, err
	}

	// Reload so responses carry the owner join.
	p, err = s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.indexProfile(ctx, p)
	return p, nil
}

// ListAll returns every profile with owner name/avatar joined in.
func (s *ProfileService) ListAll(ctx context.Context) ([]*entity.Profile, error) {
	return s.Profiles.ListAll(ctx)
}

// GetByUser loads a profile by owner id. A malformed id reads as "no such
// profile", never as an internal error.
func (s *ProfileService) GetByUser(ctx context.Context, userRef string) (*entity.Profile, error) {
	if _, err := uuid.Parse(userRef); err != nil {
		return nil, ErrNotFound
	}
	p, err := s.Profiles.GetByUserID(ctx, userRef)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// DeleteOwn removes everything the caller owns: posts first, then the
// profile, then the user record. There is no cross-aggregate transaction; a
// crash mid-way leaves the earlier deletions in place and the operation can
// be retried by the client.
func (s *ProfileService) DeleteOwn(ctx context.Context, userID string) error {
	if err := s.Posts.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.Profiles.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deleteProfileIndex(ctx, userID)
	return nil
}

// AddExperience validates required fields and prepends the entry.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, exp entity.Experience) (*entity.Profile, error) {
	if verr := requireFields("title", exp.Title, "company", exp.Company, "from", exp.From); verr != nil {
		return nil, verr
	}
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.AddExperience(exp)
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience removes the entry by id. A missing entry is a benign
// no-op; a missing profile is not.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*entity.Profile, error) {
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.RemoveExperience(entryID) {
		return p, nil
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddEducation validates required fields and prepends the entry.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, edu entity.Education) (*entity.Profile, error) {
	if verr := requireFields("school", edu.School, "degree", edu.Degree, "fieldofstudy", edu.FieldOfStudy, "from", edu.From); verr != nil {
		return nil, verr
	}
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.AddEducation(edu)
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveEducation removes the entry by id; missing entry is a benign no-op.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*entity.Profile, error) {
	p, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.RemoveEducation(entryID) {
		return p, nil
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Search runs a multi_match query over the profile index.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "status", "skills", "company", "location", "bio"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESProfilesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// ParseSkills splits the comma-delimited skills string into trimmed,
// non-empty tokens, preserving order.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func applyPatch(p *entity.Profile, patch ProfilePatch) {
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	if patch.Website != nil {
		p.Website = *patch.Website
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.GithubUsername != nil {
		p.GithubUsername = *patch.GithubUsername
	}
	if patch.Skills != nil {
		p.Skills = ParseSkills(*patch.Skills)
	}
	if patch.Twitter != nil {
		p.Social.Twitter = *patch.Twitter
	}
	if patch.Facebook != nil {
		p.Social.Facebook = *patch.Facebook
	}
	if patch.LinkedIn != nil {
		p.Social.LinkedIn = *patch.LinkedIn
	}
	if patch.YouTube != nil {
		p.Social.YouTube = *patch.YouTube
	}
	if patch.Instagram != nil {
		p.Social.Instagram = *patch.Instagram
	}
}

func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return
	}
	doc := map[string]any{
		"user":     p.UserID,
		"status":   p.Status,
		"skills":   p.Skills,
		"company":  p.Company,
		"location": p.Location,
		"bio":      p.Bio,
	}
	if p.Owner != nil {
		doc["name"] = p.Owner.Name
		doc["avatar"] = p.Owner.AvatarURL
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProfilesIndex, DocumentID: p.UserID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.UserID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", p.UserID).Warn("es index response error")
	}
}

func (s *ProfileService) deleteProfileIndex(ctx context.Context, userID string) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESProfilesIndex, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}
