package commands

import (
	"fmt"

	"github.com/wonny/folio/internal/advisor"
	"github.com/wonny/folio/internal/allocation"
	"github.com/wonny/folio/internal/marketdata"
	"github.com/wonny/folio/internal/modelconfig"
	"github.com/wonny/folio/internal/rating"
	"github.com/wonny/folio/internal/recommend"
	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/database"
	"github.com/wonny/folio/pkg/logger"
	"github.com/wonny/folio/pkg/redis"
)

// pipeline bundles the wired components every command needs.
type pipeline struct {
	cfg      *config.Config
	log      *logger.Logger
	advisor  *advisor.Advisor
	provider marketdata.Provider
	closers  []func()
}

// close releases pooled resources in reverse wiring order.
func (p *pipeline) close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
}

// buildPipeline wires config, logging, market data, scoring and allocation.
// The database and Redis layers are optional: a missing DATABASE_URL means
// no run persistence, a disabled Redis means no snapshot cache.
func buildPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	weights, err := modelconfig.Load(cfg.WeightsFile)
	if err != nil {
		return nil, fmt.Errorf("load weight table: %w", err)
	}
	weightsHash, err := modelconfig.Hash(weights)
	if err != nil {
		return nil, fmt.Errorf("hash weight table: %w", err)
	}

	p := &pipeline{cfg: cfg, log: log}

	var provider marketdata.Provider = marketdata.NewYahooProvider(cfg, log)

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without snapshot cache")
	} else {
		p.closers = append(p.closers, func() { _ = redisClient.Close() })
		if redisClient.Enabled() {
			cache := redis.NewCache(redisClient, "folio")
			provider = marketdata.NewCachedProvider(provider, cache, cfg.Market.CacheTTL)
			log.Info("Snapshot cache enabled")
		}
	}
	p.provider = provider

	engine := rating.NewEngine(weights, log)
	allocator := allocation.NewAllocator(allocation.NewEstimator(log), log)
	recommender := recommend.New(log)

	var opts []advisor.Option
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		p.closers = append(p.closers, db.Close)
		opts = append(opts, advisor.WithRepository(allocation.NewRepository(db), weightsHash))
		log.Info("Allocation run persistence enabled")
	}

	p.advisor = advisor.New(provider, engine, allocator, recommender, log, opts...)
	return p, nil
}
