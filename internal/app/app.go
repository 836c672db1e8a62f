package app

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/voetbalpool/voetbalpool/external/htmlfeed"
	"github.com/voetbalpool/voetbalpool/external/statsapi"
	"github.com/voetbalpool/voetbalpool/internal/config"
	"github.com/voetbalpool/voetbalpool/internal/domain/roster"
	"github.com/voetbalpool/voetbalpool/internal/domain/snapshot"
	filerepo "github.com/voetbalpool/voetbalpool/internal/infrastructure/repository/file"
	sqliterepo "github.com/voetbalpool/voetbalpool/internal/infrastructure/repository/sqlite"
	"github.com/voetbalpool/voetbalpool/internal/platform/cache"
	"github.com/voetbalpool/voetbalpool/internal/platform/logging"
	"github.com/voetbalpool/voetbalpool/internal/platform/throttle"
	"github.com/voetbalpool/voetbalpool/internal/usecase"
)

// App wires configuration into a ready pipeline.
type App struct {
	Pipeline *usecase.PipelineService
	Logger   *logging.Logger

	archive *sqliterepo.ArchiveRepository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	def, err := roster.LoadDefinition(cfg.PoolFile)
	if err != nil {
		return nil, crerr.Wrapf(err, "load pool definition %s", cfg.PoolFile)
	}

	var docCache *cache.Store
	if cfg.CacheEnabled {
		docCache = cache.NewStore(cfg.CacheTTL)
	}

	fetcher := htmlfeed.NewClient(htmlfeed.ClientConfig{
		Timeout:        cfg.FetchTimeout,
		MaxRetries:     cfg.FetchMaxRetries,
		UserAgent:      cfg.FetchUserAgent,
		Logger:         logger,
		CircuitBreaker: cfg.FeedCircuit,
		Cache:          docCache,
	})

	var stats usecase.StatsProvider
	if cfg.StatsAPIEnabled {
		client, err := statsapi.NewClient(statsapi.ClientConfig{
			BaseURL:        cfg.StatsAPIBaseURL,
			Token:          cfg.StatsAPIToken,
			Timeout:        cfg.StatsAPITimeout,
			MaxRetries:     cfg.StatsAPIMaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.StatsAPICircuit,
		})
		if err != nil {
			return nil, crerr.Wrap(err, "build stats api client")
		}
		stats = client
	}

	snapshots, err := filerepo.NewSnapshotRepository(cfg.SnapshotPath)
	if err != nil {
		return nil, crerr.Wrap(err, "build snapshot repository")
	}

	var archiver snapshot.Archiver
	var archive *sqliterepo.ArchiveRepository
	if cfg.ArchiveEnabled {
		archive, err = sqliterepo.NewArchiveRepository(cfg.ArchiveDBPath)
		if err != nil {
			return nil, crerr.Wrap(err, "build archive repository")
		}
		archiver = archive
	}

	pipeline, err := usecase.NewPipelineService(usecase.PipelineConfig{
		Definition: def,
		Resolver:   roster.NewResolver(def, logger),
		Fetcher:    fetcher,
		Stats:      stats,
		Delayer:    throttle.NewDelayer(cfg.FetchDelay),
		Snapshots:  snapshots,
		Archiver:   archiver,
		Gate:       usecase.NewIntegrityService(),
		Logger:     logger,
	})
	if err != nil {
		return nil, crerr.Wrap(err, "build pipeline")
	}

	return &App{
		Pipeline: pipeline,
		Logger:   logger,
		archive:  archive,
	}, nil
}

// Run executes one pipeline pass. Used by the scheduler, which has no use
// for the snapshot value itself.
func (a *App) Run(ctx context.Context) error {
	_, err := a.Pipeline.Run(ctx)
	return err
}

func (a *App) Close() error {
	if a.archive != nil {
		return a.archive.Close()
	}
	return nil
}
