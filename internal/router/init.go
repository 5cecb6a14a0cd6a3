package router

import (
	"github.com/devlinkhq/devlink/internal/application"
	"github.com/devlinkhq/devlink/internal/container"
	pginfra "github.com/devlinkhq/devlink/internal/infrastructure/postgres"
	handlers "github.com/devlinkhq/devlink/internal/interface/http"
	"github.com/devlinkhq/devlink/internal/router/modules"
)

// InitModules builds repositories, services, and handlers from the container
// singletons and registers every feature module with the router registry.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	userSvc := application.NewUserService(users, jwt, container.GetGCS(), cfg.GCSBucket, container.GetRabbitPub(), logger)
	profileSvc := application.NewProfileService(profiles, posts, users, logger, container.GetES(), cfg.ESProfilesIndex)
	postSvc := application.NewPostService(posts, users, logger)
	githubSvc := application.NewGithubService(container.GetRedis(), cfg.GithubToken, cfg.GithubCacheTTL, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, githubSvc, logger), jwt))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
