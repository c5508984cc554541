package app

import (
	"tokenlaunch-backend/internal/admin"
	"tokenlaunch-backend/internal/airdrops"
	"tokenlaunch-backend/internal/config"
	"tokenlaunch-backend/internal/database"
	"tokenlaunch-backend/internal/dex"
	"tokenlaunch-backend/internal/health"
	"tokenlaunch-backend/internal/icos"
	"tokenlaunch-backend/internal/marketdata"
	"tokenlaunch-backend/internal/middleware"
	"tokenlaunch-backend/internal/nfts"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all routes and middleware wired.
// DB and Redis are optional: without DATABASE_URL only health routes
// are mounted, without REDIS_URL health stats and the market-data
// cache are disabled.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
		app.Use(middleware.HealthMarker(rdb))
	}
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &health.Handlers{
		Rdb:           rdb,
		AdminKey:      cfg.AdminKey,
		MarketDataURL: cfg.MarketDataURL,
	}
	app.Get("/", hh.Root)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	if db != nil {
		// ICO projects
		ih := &icos.Handlers{Service: &icos.Service{DB: db}}
		ig := app.Group("/api/v1/icos")
		ig.Get("/", ih.Index)
		ig.Post("/submit", ih.Submit)
		ig.Get("/:ico_id", ih.GetByID)

		// NFT collections
		nh := &nfts.Handlers{Service: &nfts.Service{DB: db}}
		ng := app.Group("/api/v1/nfts")
		ng.Get("/", nh.Index)
		ng.Post("/submit", nh.Submit)
		ng.Get("/:nft_id", nh.GetByID)

		// Airdrops
		ah := &airdrops.Handlers{Service: &airdrops.Service{DB: db}}
		ag := app.Group("/api/v1/airdrops")
		ag.Get("/", ah.Index)
		ag.Post("/submit", ah.Submit)
		ag.Get("/:airdrop_id", ah.GetByID)

		// DEX tokens, enriched with Dexscreener market data
		cache := &marketdata.Cache{Rdb: rdb, TTL: cfg.MarketDataCacheTTL}
		enricher := marketdata.NewEnricher(marketdata.NewClient(cfg.MarketDataURL), cache)
		dh := &dex.Handlers{Service: &dex.Service{DB: db, Enricher: enricher}}
		dg := app.Group("/api/v1/dex")
		dg.Get("/tokens", dh.Index)
		dg.Post("/tokens/refresh", dh.Refresh)
		dg.Post("/tokens/submit", dh.Submit)
		dg.Get("/tokens/:token_id", dh.GetByID)

		// Moderation
		mh := &admin.Handlers{Service: &admin.Service{DB: db}}
		mg := app.Group("/api/v1/admin", middleware.RequireAdminKey(cfg.AdminKey))
		mg.Patch("/:kind/:id/approve", mh.Approve)
		mg.Patch("/:kind/:id/reject", mh.Reject)
	}

	return app, db, rdb, nil
}
