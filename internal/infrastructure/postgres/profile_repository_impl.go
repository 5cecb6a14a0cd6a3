package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/domain/repository"
)

// ProfileRepository stores the profile aggregate in a single row: scalar
// fields as columns, skills/social/experience/education as JSONB so a save
// always writes the embedded collections together with their owner.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	skills, social, experience, education, err := marshalProfileJSON(p)
	if err != nil {
		return err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, company, website, location, status, bio, github_username,
			skills, social, experience, education)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Company, p.Website, p.Location, p.Status, p.Bio, p.GithubUsername,
		skills, social, experience, education)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.user_id, p.company, p.website, p.location, p.status, p.bio, p.github_username,
			p.skills, p.social, p.experience, p.education, p.created_at, p.updated_at,
			u.name, u.avatar_url
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`, userID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) ListAll(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.user_id, p.company, p.website, p.location, p.status, p.bio, p.github_username,
			p.skills, p.social, p.experience, p.education, p.created_at, p.updated_at,
			u.name, u.avatar_url
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	skills, social, experience, education, err := marshalProfileJSON(p)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET company = $1, website = $2, location = $3, status = $4, bio = $5, github_username = $6,
			skills = $7, social = $8, experience = $9, education = $10, updated_at = $11
		WHERE user_id = $12
	`, p.Company, p.Website, p.Location, p.Status, p.Bio, p.GithubUsername,
		skills, social, experience, education, p.UpdatedAt, p.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

func marshalProfileJSON(p *entity.Profile) (skills, social, experience, education []byte, err error) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []entity.Experience{}
	}
	if p.Education == nil {
		p.Education = []entity.Education{}
	}
	if skills, err = json.Marshal(p.Skills); err != nil {
		return
	}
	if social, err = json.Marshal(p.Social); err != nil {
		return
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return
	}
	education, err = json.Marshal(p.Education)
	return
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{Owner: &entity.ProfileOwner{}}
	var skills, social, experience, education []byte

	if err := row.Scan(&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location, &p.Status, &p.Bio,
		&p.GithubUsername, &skills, &social, &experience, &education, &p.CreatedAt, &p.UpdatedAt,
		&p.Owner.Name, &p.Owner.AvatarURL); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, err
	}
	return p, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
