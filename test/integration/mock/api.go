package mock

import (
	"net/http/httptest"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-records/backend/config"
	"github.com/finance-records/backend/internal/infra/dependency"
	"github.com/finance-records/backend/internal/integration/cache"
	"github.com/finance-records/backend/internal/integration/persistence"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// App is a fully wired application instance serving HTTP from an in-memory
// sqlite database and a miniredis-backed metrics cache.
type App struct {
	Server *httptest.Server
	Db     *Db
	Repos  dependency.Repositories
}

// NewApp assembles the application over the given database and redis client
// and starts an HTTP test server for it.
func NewApp(db *Db, redisClient *redis.Client) *App {
	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 7 * 24 * time.Hour
	cfg.Metrics.CacheTTL = time.Minute

	repos := dependency.Repositories{
		Users:      persistence.NewUserRepository(db.Conn),
		Tokens:     persistence.NewTokenRepository(db.Conn),
		Categories: persistence.NewCategoryRepository(db.Conn),
		Records:    persistence.NewRecordRepository(db.Conn),
		History:    persistence.NewHistoryRepository(db.Conn),
	}

	injector := dependency.NewInjector(cfg, repos,
		cache.NewRedisMetricsCache(redisClient),
		func() bool { return true },
	)

	engine := injector.Router.Setup("test")

	return &App{
		Server: httptest.NewServer(engine),
		Db:     db,
		Repos:  repos,
	}
}

// Close shuts the HTTP server down.
func (a *App) Close() {
	a.Server.Close()
}
