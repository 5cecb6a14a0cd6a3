package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink/internal/domain/collection"
)

// SocialLinks maps a fixed platform set to URLs. Empty entries are omitted.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is an embedded entry inside Profile. Dates are ISO day strings
// ("2020-01-31"); when Current is true, To is to be read as "ongoing".
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education is an embedded entry inside Profile.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// ProfileOwner carries the owner's display fields joined in on reads.
// Denormalized for list/detail responses only; never written back.
type ProfileOwner struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
}

// Profile is owned 1:1 by a User. Experience and Education are embedded
// ordered collections with no lifecycle outside the profile; both are kept
// most-recent-first.
type Profile struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user"`
	Company        string        `json:"company,omitempty"`
	Website        string        `json:"website,omitempty"`
	Location       string        `json:"location,omitempty"`
	Status         string        `json:"status"`
	Bio            string        `json:"bio,omitempty"`
	GithubUsername string        `json:"githubusername,omitempty"`
	Skills         []string      `json:"skills"`
	Social         SocialLinks   `json:"social"`
	Experience     []Experience  `json:"experience"`
	Education      []Education   `json:"education"`
	Owner          *ProfileOwner `json:"owner,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// AddExperience assigns a fresh id and prepends the entry.
func (p *Profile) AddExperience(exp Experience) Experience {
	exp.ID = uuid.NewString()
	p.Experience = collection.Prepend(p.Experience, exp)
	return exp
}

// RemoveExperience removes the entry with the given id, preserving the
// relative order of the rest. Reports whether an entry was removed.
func (p *Profile) RemoveExperience(entryID string) bool {
	rest, found := collection.RemoveFirst(p.Experience, func(e Experience) bool { return e.ID == entryID })
	p.Experience = rest
	return found
}

// AddEducation assigns a fresh id and prepends the entry.
func (p *Profile) AddEducation(edu Education) Education {
	edu.ID = uuid.NewString()
	p.Education = collection.Prepend(p.Education, edu)
	return edu
}

// RemoveEducation removes the entry with the given id. Reports whether an
// entry was removed.
func (p *Profile) RemoveEducation(entryID string) bool {
	rest, found := collection.RemoveFirst(p.Education, func(e Education) bool { return e.ID == entryID })
	p.Education = rest
	return found
}
