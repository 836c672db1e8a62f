package usecase

import (
	"time"

	"github.com/voetbalpool/voetbalpool/internal/domain/scoring"
)

// AggregationContext accumulates per-entity contributions across the
// ordered source documents of one run. It is built incrementally by the
// pipeline, read once to assemble the result, then discarded.
//
// Merge policies per metric:
//   - league points: overwrite-on-write (a league is scraped once per run)
//   - UEFA phase points: additive across the three UEFA competitions
//   - goal counts: additive across documents, first-seen-wins within one
//     document (a scorer table and a squad table on the same page may both
//     list a player)
//   - cup progress: single highest milestone per category per team
type AggregationContext struct {
	leaguePoints map[string]int
	uefaPoints   map[string]int
	goalCounts   map[string]int
	goalEvents   map[string][]scoring.GoalEvent
	cups         map[string]map[scoring.CupCategory]scoring.CupProgress
	docGoals     map[string]map[string]struct{}
	matched      map[string]struct{}
}

func NewAggregationContext() *AggregationContext {
	return &AggregationContext{
		leaguePoints: make(map[string]int),
		uefaPoints:   make(map[string]int),
		goalCounts:   make(map[string]int),
		goalEvents:   make(map[string][]scoring.GoalEvent),
		cups:         make(map[string]map[scoring.CupCategory]scoring.CupProgress),
		docGoals:     make(map[string]map[string]struct{}),
		matched:      make(map[string]struct{}),
	}
}

func (a *AggregationContext) SetLeaguePoints(team string, points int) {
	a.leaguePoints[team] = points
	a.matched[team] = struct{}{}
}

func (a *AggregationContext) AddUEFAPoints(team string, points int) {
	a.uefaPoints[team] += points
	a.matched[team] = struct{}{}
}

// AddGoalCount records a table-derived goal total. Returns false when the
// player was already counted within the same document.
func (a *AggregationContext) AddGoalCount(document, player string, goals int) bool {
	seen, ok := a.docGoals[document]
	if !ok {
		seen = make(map[string]struct{})
		a.docGoals[document] = seen
	}
	if _, dup := seen[player]; dup {
		return false
	}
	seen[player] = struct{}{}

	a.goalCounts[player] += goals
	a.matched[player] = struct{}{}
	return true
}

// SetGoalEvents stores event-level goals for a player. Event data carries
// dates and types, so it supersedes any table-derived count.
func (a *AggregationContext) SetGoalEvents(player string, events []scoring.GoalEvent) {
	a.goalEvents[player] = events
	a.matched[player] = struct{}{}
}

func (a *AggregationContext) RecordCupProgress(team string, progress scoring.CupProgress) {
	byCategory, ok := a.cups[team]
	if !ok {
		byCategory = make(map[scoring.CupCategory]scoring.CupProgress)
		a.cups[team] = byCategory
	}

	current, ok := byCategory[progress.Category]
	if !ok || scoring.MilestoneRank(progress.Milestone) > scoring.MilestoneRank(current.Milestone) {
		byCategory[progress.Category] = progress
	}
	a.matched[team] = struct{}{}
}

// TeamInput assembles the raw metrics for one team. Teams untouched by
// any source fact score zero everywhere; that is a valid steady state.
func (a *AggregationContext) TeamInput(team string) scoring.TeamInput {
	in := scoring.TeamInput{
		LeaguePoints:    a.leaguePoints[team],
		UEFAPhasePoints: a.uefaPoints[team],
	}
	if progress, ok := a.cups[team][scoring.CupDomestic]; ok {
		p := progress
		in.DomesticCup = &p
	}
	if progress, ok := a.cups[team][scoring.CupUEFA]; ok {
		p := progress
		in.UEFACup = &p
	}
	return in
}

// PlayerGoals yields the eligible goal count for one player. Event-level
// data wins over table counts when both exist.
func (a *AggregationContext) PlayerGoals(player string, activeFrom time.Time) int {
	if events, ok := a.goalEvents[player]; ok {
		return scoring.CountEligibleGoals(events, activeFrom)
	}
	return a.goalCounts[player]
}

// Matched reports whether any source fact touched the entity this run.
func (a *AggregationContext) Matched(entity string) bool {
	_, ok := a.matched[entity]
	return ok
}
