package fx

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/ferrarinobrakes/oddsboard/internal/config"
	"github.com/ferrarinobrakes/oddsboard/internal/database"
	"github.com/ferrarinobrakes/oddsboard/internal/favorites"
	"github.com/ferrarinobrakes/oddsboard/internal/logger"
	"github.com/ferrarinobrakes/oddsboard/internal/logos"
	"github.com/ferrarinobrakes/oddsboard/internal/oddsapi"
	"github.com/ferrarinobrakes/oddsboard/internal/scheduler"
	"github.com/ferrarinobrakes/oddsboard/internal/server"
	"github.com/ferrarinobrakes/oddsboard/internal/service"
)

// ProvideRedis builds the optional logo cache client. An empty address
// disables caching; lookups then go straight to the badge API.
func ProvideRedis(cfg *config.Config, log zerolog.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info().Msg("redis not configured, logo cache disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

// ProvideSource exposes the odds feed client as the board's data source.
func ProvideSource(client *oddsapi.Client) service.Source {
	return client
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideRedis),
	// clients
	fx.Provide(oddsapi.NewClient),
	fx.Provide(ProvideSource),
	fx.Provide(logos.New),
	// repos
	fx.Provide(favorites.NewRepository),
	// svc
	fx.Provide(service.NewRegistry),
	fx.Provide(scheduler.New),
	// server
	fx.Provide(server.NewHandler),
)
