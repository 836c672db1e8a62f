package scoring

import "time"

type GoalType string

const (
	GoalNormal          GoalType = "normal"
	GoalPenalty         GoalType = "penalty"
	GoalOwnGoal         GoalType = "own_goal"
	GoalPenaltyShootout GoalType = "penalty_shootout"
)

// GoalEvent is a single goal as reported by a goal source. Events are
// ephemeral: they feed eligibility filtering and are never persisted.
type GoalEvent struct {
	Date        time.Time
	Minute      int
	Type        GoalType
	Competition string
}

type CupCategory string

const (
	CupDomestic CupCategory = "domestic"
	CupUEFA     CupCategory = "uefa"
)

type Milestone string

const (
	MilestoneSemifinal Milestone = "semifinal"
	MilestoneRunnerUp  Milestone = "runner_up"
	MilestoneWinner    Milestone = "winner"
)

type UEFACompetition string

const (
	ChampionsLeague  UEFACompetition = "champions_league"
	EuropaLeague     UEFACompetition = "europa_league"
	ConferenceLeague UEFACompetition = "conference_league"
)

// CupProgress records the furthest stage a team reached in one cup
// category. Competition is set for the UEFA category only.
type CupProgress struct {
	Category    CupCategory
	Competition UEFACompetition
	Milestone   Milestone
}

// StandingsRecord is one parsed standings row: points for an entity in a
// single competition context.
type StandingsRecord struct {
	Entity string
	Points int
}

// TeamInput carries the aggregated raw metrics for one team going into
// the rules engine.
type TeamInput struct {
	LeaguePoints    int
	UEFAPhasePoints int
	DomesticCup     *CupProgress
	UEFACup         *CupProgress
}

// TeamBreakdown is the scored result for one team. UEFAPoints already
// includes the UEFA cup bonus; DomesticCupPoints is the domestic bonus.
type TeamBreakdown struct {
	Name              string
	LeaguePoints      int
	UEFAPoints        int
	DomesticCupPoints int
}

func (b TeamBreakdown) Total() int {
	return b.LeaguePoints + b.UEFAPoints + b.DomesticCupPoints
}

// Ranked is one pool entry after sorting, used for payout distribution.
type Ranked struct {
	Name  string
	Total int
}

func ParseGoalType(raw string) GoalType {
	switch raw {
	case "penalty":
		return GoalPenalty
	case "own_goal", "own-goal", "owngoal":
		return GoalOwnGoal
	case "penalty_shootout", "penalty-shootout", "shootout":
		return GoalPenaltyShootout
	default:
		return GoalNormal
	}
}

func ParseMilestone(raw string) (Milestone, bool) {
	switch raw {
	case "semifinal", "semi_final", "semi-final":
		return MilestoneSemifinal, true
	case "runner_up", "runner-up", "finalist":
		return MilestoneRunnerUp, true
	case "winner":
		return MilestoneWinner, true
	default:
		return "", false
	}
}

func ParseUEFACompetition(raw string) (UEFACompetition, bool) {
	switch raw {
	case "champions_league", "champions-league":
		return ChampionsLeague, true
	case "europa_league", "europa-league":
		return EuropaLeague, true
	case "conference_league", "conference-league":
		return ConferenceLeague, true
	default:
		return "", false
	}
}

// MilestoneRank orders milestones so the single highest achieved stage can
// be kept when a source reports several.
func MilestoneRank(m Milestone) int {
	switch m {
	case MilestoneWinner:
		return 3
	case MilestoneRunnerUp:
		return 2
	case MilestoneSemifinal:
		return 1
	default:
		return 0
	}
}
