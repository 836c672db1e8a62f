package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/voetbalpool/voetbalpool/external/htmlfeed"
	"github.com/voetbalpool/voetbalpool/internal/domain/roster"
	"github.com/voetbalpool/voetbalpool/internal/domain/scoring"
	"github.com/voetbalpool/voetbalpool/internal/domain/snapshot"
	"github.com/voetbalpool/voetbalpool/internal/platform/logging"
	"github.com/voetbalpool/voetbalpool/internal/platform/throttle"
)

// DocumentFetcher retrieves one source page as classified tables.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*htmlfeed.Document, error)
}

// StatsProvider supplies event-level goal and cup data for roster
// entities that carry a stats reference.
type StatsProvider interface {
	PlayerGoals(ctx context.Context, ref string) ([]scoring.GoalEvent, error)
	TeamCupProgress(ctx context.Context, ref string) ([]scoring.CupProgress, error)
}

type PipelineConfig struct {
	Definition roster.Definition
	Resolver   *roster.Resolver
	Fetcher    DocumentFetcher
	Stats      StatsProvider
	Delayer    *throttle.Delayer
	Snapshots  snapshot.Repository
	Archiver   snapshot.Archiver
	Gate       *IntegrityService
	Logger     *logging.Logger
	Now        func() time.Time
}

// PipelineService drives one full run: fetch every configured source in
// order, aggregate facts per roster entity, score both pools, and persist
// the result once the integrity gate approves it.
type PipelineService struct {
	def       roster.Definition
	resolver  *roster.Resolver
	fetcher   DocumentFetcher
	stats     StatsProvider
	delayer   *throttle.Delayer
	snapshots snapshot.Repository
	archiver  snapshot.Archiver
	gate      *IntegrityService
	logger    *logging.Logger
	now       func() time.Time
}

func NewPipelineService(cfg PipelineConfig) (*PipelineService, error) {
	if cfg.Resolver == nil {
		return nil, crerr.Wrap(ErrInvalidInput, "pipeline: resolver is required")
	}
	if cfg.Fetcher == nil {
		return nil, crerr.Wrap(ErrInvalidInput, "pipeline: fetcher is required")
	}
	if cfg.Snapshots == nil {
		return nil, crerr.Wrap(ErrInvalidInput, "pipeline: snapshot repository is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	gate := cfg.Gate
	if gate == nil {
		gate = NewIntegrityService()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &PipelineService{
		def:       cfg.Definition,
		resolver:  cfg.Resolver,
		fetcher:   cfg.Fetcher,
		stats:     cfg.Stats,
		delayer:   cfg.Delayer,
		snapshots: cfg.Snapshots,
		archiver:  cfg.Archiver,
		gate:      gate,
		logger:    logger,
		now:       now,
	}, nil
}

// Run executes one pipeline pass. A failed source is logged and skipped;
// the run continues with what the remaining sources yield. Only a tripped
// integrity gate or a persistence failure fails the run.
func (s *PipelineService) Run(ctx context.Context) (snapshot.PoolResult, error) {
	ctx, span := startSpan(ctx, "PipelineService.Run")
	defer span.End()

	started := s.now()
	agg := NewAggregationContext()

	for _, source := range s.def.Sources {
		if err := s.delayer.Wait(ctx); err != nil {
			return snapshot.PoolResult{}, crerr.Wrap(err, "pipeline: throttle wait")
		}

		doc, err := s.fetcher.Fetch(ctx, source.URL)
		if err != nil {
			s.logger.WarnContext(ctx, "source fetch failed, skipping",
				"source", source.Name,
				"url", source.URL,
				"error", err,
			)
			continue
		}

		s.ingestDocument(ctx, agg, source, doc)
	}

	if s.stats != nil {
		s.collectStats(ctx, agg)
	}

	result := s.buildResult(ctx, agg)

	prev, found, err := s.snapshots.Load(ctx)
	if err != nil {
		return snapshot.PoolResult{}, crerr.Wrap(err, "pipeline: load previous snapshot")
	}
	var prevPtr *snapshot.PoolResult
	if found {
		prevPtr = &prev
	}

	if violations := s.gate.Check(ctx, result, prevPtr); len(violations) > 0 {
		for _, v := range violations {
			s.logger.ErrorContext(ctx, "integrity violation", "violation", v.String())
		}
		return snapshot.PoolResult{}, crerr.Wrapf(ErrIntegrity, "%d violations", len(violations))
	}

	if err := s.snapshots.Store(ctx, result); err != nil {
		return snapshot.PoolResult{}, crerr.Wrap(err, "pipeline: store snapshot")
	}
	if s.archiver != nil {
		if err := s.archiver.Append(ctx, result); err != nil {
			// History is best effort; the approved snapshot is already live.
			s.logger.WarnContext(ctx, "archive append failed", "error", err)
		}
	}

	s.logger.InfoContext(ctx, "run completed",
		"season", result.Season,
		"participants", len(result.TeamPool),
		"elapsed", s.now().Sub(started),
	)
	return result, nil
}

func (s *PipelineService) ingestDocument(ctx context.Context, agg *AggregationContext, source roster.Source, doc *htmlfeed.Document) {
	tables := doc.RecognizedTables()
	if len(tables) == 0 {
		s.logger.WarnContext(ctx, "no recognized tables in source",
			"source", source.Name,
			"url", doc.URL,
		)
		return
	}

	for _, table := range tables {
		rows := htmlfeed.EntityRows(table)

		switch table.Shape {
		case htmlfeed.ShapeStandings:
			for _, row := range rows {
				team, ok := s.resolver.ResolveTeam(row.Name)
				if !ok {
					continue
				}
				switch source.Category {
				case roster.SourceLeague:
					agg.SetLeaguePoints(team, row.Value)
				case roster.SourceUEFA:
					agg.AddUEFAPoints(team, row.Value)
				}
			}
		case htmlfeed.ShapeRankedScorer, htmlfeed.ShapeSquadAppearances:
			for _, row := range rows {
				player, ok := s.resolver.ResolvePlayer(row.Name)
				if !ok {
					continue
				}
				if !agg.AddGoalCount(doc.URL, player, row.Value) {
					s.logger.DebugContext(ctx, "duplicate goal row in document",
						"player", player,
						"url", doc.URL,
					)
				}
			}
		}
	}
}

func (s *PipelineService) collectStats(ctx context.Context, agg *AggregationContext) {
	for _, team := range s.def.AllTeams() {
		if team.StatsRef == "" {
			continue
		}
		progress, err := s.stats.TeamCupProgress(ctx, team.StatsRef)
		if err != nil {
			s.logger.WarnContext(ctx, "cup progress lookup failed",
				"team", team.Name,
				"error", err,
			)
			continue
		}
		for _, p := range progress {
			agg.RecordCupProgress(team.Name, p)
		}
	}

	for _, player := range s.def.AllPlayers() {
		if player.StatsRef == "" {
			continue
		}
		events, err := s.stats.PlayerGoals(ctx, player.StatsRef)
		if err != nil {
			s.logger.WarnContext(ctx, "goal events lookup failed",
				"player", player.Name,
				"error", err,
			)
			continue
		}
		agg.SetGoalEvents(player.Name, events)
	}
}

func (s *PipelineService) buildResult(ctx context.Context, agg *AggregationContext) snapshot.PoolResult {
	result := snapshot.PoolResult{
		LastUpdated: s.now().UTC().Format(time.RFC3339),
		Season:      s.def.Season,
	}

	teamByName := make(map[string]snapshot.TeamEntry, len(s.def.Participants))
	goalsByName := make(map[string]snapshot.GoalsEntry, len(s.def.Participants))
	var teamRanked, goalsRanked []scoring.Ranked

	for _, participant := range s.def.Participants {
		teamEntry := snapshot.TeamEntry{Participant: participant.Name}
		for _, team := range participant.Teams {
			if !agg.Matched(team.Name) {
				s.logger.WarnContext(ctx, "no source facts for roster team", "team", team.Name)
			}
			breakdown := scoring.ScoreTeam(team.Name, agg.TeamInput(team.Name))
			teamEntry.Teams = append(teamEntry.Teams, snapshot.TeamLine{
				Name:              breakdown.Name,
				LeaguePoints:      breakdown.LeaguePoints,
				UEFAPoints:        breakdown.UEFAPoints,
				DomesticCupPoints: breakdown.DomesticCupPoints,
			})
			teamEntry.TotalPoints += breakdown.Total()
		}
		teamByName[participant.Name] = teamEntry
		teamRanked = append(teamRanked, scoring.Ranked{Name: participant.Name, Total: teamEntry.TotalPoints})

		goalsEntry := snapshot.GoalsEntry{Participant: participant.Name}
		for _, player := range participant.Players {
			if !agg.Matched(player.Name) {
				s.logger.WarnContext(ctx, "no source facts for roster player", "player", player.Name)
			}
			n := agg.PlayerGoals(player.Name, player.ActiveFrom.Time)
			goalsEntry.Players = append(goalsEntry.Players, snapshot.PlayerLine{Name: player.Name, Goals: n})
			goalsEntry.TotalGoals += n
		}
		goalsByName[participant.Name] = goalsEntry
		goalsRanked = append(goalsRanked, scoring.Ranked{Name: participant.Name, Total: goalsEntry.TotalGoals})
	}

	// Alphabetical pre-sort fixes the order among equal totals; the stable
	// descending sort then preserves it, keeping the report deterministic.
	sortAlphaFold(teamRanked)
	sortAlphaFold(goalsRanked)
	scoring.SortRanked(teamRanked)
	scoring.SortRanked(goalsRanked)

	teamPayouts := scoring.DistributePot(teamRanked)
	for i, ranked := range teamRanked {
		entry := teamByName[ranked.Name]
		entry.Rank = i + 1
		entry.Payout = teamPayouts[i]
		result.TeamPool = append(result.TeamPool, entry)
	}

	goalsPayouts := scoring.DistributePot(goalsRanked)
	for i, ranked := range goalsRanked {
		entry := goalsByName[ranked.Name]
		entry.Rank = i + 1
		entry.Payout = goalsPayouts[i]
		result.GoalsPool = append(result.GoalsPool, entry)
	}

	return result
}

func sortAlphaFold(entries []scoring.Ranked) {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}
