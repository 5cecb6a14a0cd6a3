package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/devlinkhq/devlink/config"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	pginfra "github.com/devlinkhq/devlink/internal/infrastructure/postgres"
	"github.com/devlinkhq/devlink/pkg/helpers"
)

// Seeds a demo user with a profile and a post for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	email := "demo@devlink.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := &entity.User{
		Name:      "Demo User",
		Email:     email,
		Password:  hash,
		AvatarURL: helpers.GravatarURL(email),
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, u.Email, password)

	p := &entity.Profile{
		UserID: u.ID,
		Status: "Developer",
		Skills: []string{"Go", "PostgreSQL", "Redis"},
		Bio:    "Seeded demo profile",
	}
	p.AddExperience(entity.Experience{
		Title:   "Backend Engineer",
		Company: "DevLink",
		From:    "2023-01-01",
		Current: true,
	})
	if err := profiles.Create(ctx, p); err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}
	fmt.Printf("seeded profile: id=%s\n", p.ID)

	post := &entity.Post{
		UserID:    u.ID,
		Text:      "Hello from the seeded demo account!",
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
	if err := posts.Create(ctx, post); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%s\n", post.ID)
}
