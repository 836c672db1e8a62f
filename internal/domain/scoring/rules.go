package scoring

import (
	"sort"
	"strings"
	"time"
)

// Bonus tables are statically declared and non-stacking: only the single
// recorded milestone per cup category contributes.
var domesticCupBonus = map[Milestone]int{
	MilestoneWinner:    15,
	MilestoneRunnerUp:  12,
	MilestoneSemifinal: 8,
}

var uefaCupBonus = map[UEFACompetition]map[Milestone]int{
	ChampionsLeague: {
		MilestoneWinner:    20,
		MilestoneRunnerUp:  15,
		MilestoneSemifinal: 10,
	},
	EuropaLeague: {
		MilestoneWinner:    12,
		MilestoneRunnerUp:  10,
		MilestoneSemifinal: 6,
	},
	ConferenceLeague: {
		MilestoneWinner:    12,
		MilestoneRunnerUp:  10,
		MilestoneSemifinal: 6,
	},
}

var supercupKeywords = []string{
	"super cup",
	"supercup",
	"community shield",
	"supercopa",
	"supercoppa",
	"trophée des champions",
	"dfl-supercup",
}

const PotSize = 300

func DomesticCupBonus(progress *CupProgress) int {
	if progress == nil {
		return 0
	}
	return domesticCupBonus[progress.Milestone]
}

func UEFACupBonus(progress *CupProgress) int {
	if progress == nil {
		return 0
	}
	return uefaCupBonus[progress.Competition][progress.Milestone]
}

// ScoreTeam computes the composite breakdown for one team. The UEFA cup
// bonus folds into the UEFA column so the column totals reconcile with the
// published report.
func ScoreTeam(name string, in TeamInput) TeamBreakdown {
	return TeamBreakdown{
		Name:              name,
		LeaguePoints:      in.LeaguePoints,
		UEFAPoints:        in.UEFAPhasePoints + UEFACupBonus(in.UEFACup),
		DomesticCupPoints: DomesticCupBonus(in.DomesticCup),
	}
}

// IsSupercup reports whether a competition name denotes one of the
// single-match exhibition cups excluded from counting.
func IsSupercup(competition string) bool {
	lowered := strings.ToLower(competition)
	for _, keyword := range supercupKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// GoalEligible applies the exclusion rules: goals before the player's
// active-from date (exclusive), own goals, shootout goals and supercup
// goals do not count. In-match penalties and extra-time goals do.
func GoalEligible(event GoalEvent, activeFrom time.Time) bool {
	if event.Date.Before(activeFrom) {
		return false
	}
	if event.Type == GoalOwnGoal || event.Type == GoalPenaltyShootout {
		return false
	}
	if IsSupercup(event.Competition) {
		return false
	}
	return true
}

func CountEligibleGoals(events []GoalEvent, activeFrom time.Time) int {
	count := 0
	for _, event := range events {
		if GoalEligible(event, activeFrom) {
			count++
		}
	}
	return count
}

// SortRanked orders pool entries descending by total. The sort is stable:
// equal totals keep their input order and receive consecutive ranks, so
// ranks are always a dense 1..N sequence.
func SortRanked(entries []Ranked) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
}

// DistributePot splits the 300-unit pot over a descending-sorted pool.
//
// A single leader takes 250 and the runner-up position takes 50. Two tied
// leaders take 150 each and the 50 lapses. With three or more tied leaders
// the pot splits evenly when the tie spans the whole pool; otherwise the
// lexicographically first display name among the tied takes 250 and the
// best total below the tie takes 50.
func DistributePot(entries []Ranked) []int {
	if len(entries) == 0 {
		return nil
	}

	amounts := make([]int, len(entries))
	top := entries[0].Total
	tied := 1
	for tied < len(entries) && entries[tied].Total == top {
		tied++
	}

	switch {
	case tied == 1:
		amounts[0] = 250
		if len(entries) > 1 {
			amounts[1] = 50
		}
	case tied == 2:
		amounts[0] = 150
		amounts[1] = 150
	case tied == len(entries):
		share := PotSize / tied
		for i := range amounts {
			amounts[i] = share
		}
	default:
		winner := 0
		for i := 1; i < tied; i++ {
			if lessFold(entries[i].Name, entries[winner].Name) {
				winner = i
			}
		}
		amounts[winner] = 250
		amounts[tied] = 50
	}

	return amounts
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
