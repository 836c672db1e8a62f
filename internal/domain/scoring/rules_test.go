package scoring

import (
	"testing"
	"time"
)

func TestScoreTeam_DomesticBonusDoesNotStack(t *testing.T) {
	t.Parallel()

	got := ScoreTeam("ajax", TeamInput{
		LeaguePoints: 80,
		DomesticCup:  &CupProgress{Category: CupDomestic, Milestone: MilestoneWinner},
	})

	if got.DomesticCupPoints != 15 {
		t.Fatalf("expected winner bonus 15, got %d", got.DomesticCupPoints)
	}
	if got.Total() != 95 {
		t.Fatalf("expected total 95, got %d", got.Total())
	}
}

func TestScoreTeam_CupMathLiteral(t *testing.T) {
	t.Parallel()

	got := ScoreTeam("psv", TeamInput{
		LeaguePoints:    80,
		UEFAPhasePoints: 0,
		DomesticCup:     &CupProgress{Category: CupDomestic, Milestone: MilestoneRunnerUp},
		UEFACup: &CupProgress{
			Category:    CupUEFA,
			Competition: ChampionsLeague,
			Milestone:   MilestoneWinner,
		},
	})

	if got.DomesticCupPoints != 12 {
		t.Fatalf("expected domestic cup points 12, got %d", got.DomesticCupPoints)
	}
	if got.UEFAPoints != 20 {
		t.Fatalf("expected uefa points 20, got %d", got.UEFAPoints)
	}
	if got.Total() != 112 {
		t.Fatalf("expected total 112, got %d", got.Total())
	}
}

func TestScoreTeam_NoCupProgressYieldsZeroBonus(t *testing.T) {
	t.Parallel()

	got := ScoreTeam("utrecht", TeamInput{LeaguePoints: 54})
	if got.Total() != 54 {
		t.Fatalf("expected total 54, got %d", got.Total())
	}
}

func TestUEFACupBonus_PerCompetitionTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		competition UEFACompetition
		milestone   Milestone
		want        int
	}{
		{ChampionsLeague, MilestoneWinner, 20},
		{ChampionsLeague, MilestoneRunnerUp, 15},
		{ChampionsLeague, MilestoneSemifinal, 10},
		{EuropaLeague, MilestoneWinner, 12},
		{EuropaLeague, MilestoneSemifinal, 6},
		{ConferenceLeague, MilestoneRunnerUp, 10},
	}

	for _, tc := range cases {
		got := UEFACupBonus(&CupProgress{Category: CupUEFA, Competition: tc.competition, Milestone: tc.milestone})
		if got != tc.want {
			t.Fatalf("%s/%s: expected %d, got %d", tc.competition, tc.milestone, tc.want, got)
		}
	}
}

func TestCountEligibleGoals_ExclusionLiteral(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC)
	activeFrom := day.AddDate(0, -1, 0)

	events := []GoalEvent{
		{Date: day, Minute: 90, Type: GoalNormal},
		{Date: day, Minute: 118, Type: GoalNormal},
		{Date: day, Type: GoalPenaltyShootout},
	}

	if got := CountEligibleGoals(events, activeFrom); got != 2 {
		t.Fatalf("expected 2 eligible goals, got %d", got)
	}
}

func TestGoalEligible_ActiveFromBoundary(t *testing.T) {
	t.Parallel()

	activeFrom := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	onDate := GoalEvent{Date: activeFrom, Type: GoalNormal}
	if !GoalEligible(onDate, activeFrom) {
		t.Fatal("goal on the active-from date must count")
	}

	dayBefore := GoalEvent{Date: activeFrom.AddDate(0, 0, -1), Type: GoalNormal}
	if GoalEligible(dayBefore, activeFrom) {
		t.Fatal("goal one day before active-from must not count")
	}
}

func TestGoalEligible_InMatchPenaltyCounts(t *testing.T) {
	t.Parallel()

	activeFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	event := GoalEvent{Date: activeFrom.AddDate(0, 2, 0), Minute: 73, Type: GoalPenalty, Competition: "Eredivisie"}
	if !GoalEligible(event, activeFrom) {
		t.Fatal("in-match penalty must count")
	}
}

func TestIsSupercup_KeywordList(t *testing.T) {
	t.Parallel()

	excluded := []string{
		"Johan Cruijff Schaal Super Cup",
		"UEFA Supercup",
		"FA Community Shield",
		"Supercopa de España",
		"Supercoppa Italiana",
		"Trophée des Champions",
		"DFL-Supercup",
	}
	for _, name := range excluded {
		if !IsSupercup(name) {
			t.Fatalf("expected %q to be excluded", name)
		}
	}

	if IsSupercup("KNVB Beker") {
		t.Fatal("regular cup must not match supercup keywords")
	}
}

func TestDistributePot_SingleLeader(t *testing.T) {
	t.Parallel()

	entries := []Ranked{{Name: "anna", Total: 100}, {Name: "bram", Total: 80}, {Name: "cees", Total: 60}}
	got := DistributePot(entries)
	want := []int{250, 50, 0}
	assertAmounts(t, got, want)
}

func TestDistributePot_TwoWayTieConsumesSecondPlace(t *testing.T) {
	t.Parallel()

	entries := []Ranked{{Name: "anna", Total: 100}, {Name: "bram", Total: 100}, {Name: "cees", Total: 60}}
	got := DistributePot(entries)
	want := []int{150, 150, 0}
	assertAmounts(t, got, want)
}

func TestDistributePot_FullPoolTieSplitsEvenly(t *testing.T) {
	t.Parallel()

	entries := []Ranked{{Name: "anna", Total: 100}, {Name: "bram", Total: 100}, {Name: "cees", Total: 100}}
	got := DistributePot(entries)
	want := []int{100, 100, 100}
	assertAmounts(t, got, want)
}

func TestDistributePot_ThreeWayTieWithTrailingEntrant(t *testing.T) {
	t.Parallel()

	entries := []Ranked{
		{Name: "dirk", Total: 100},
		{Name: "anna", Total: 100},
		{Name: "bram", Total: 100},
		{Name: "cees", Total: 70},
	}
	got := DistributePot(entries)

	// Lexicographically first display name among the tied group wins.
	if got[1] != 250 {
		t.Fatalf("expected anna to take 250, got %v", got)
	}
	if got[3] != 50 {
		t.Fatalf("expected trailing entrant to take 50, got %v", got)
	}
	if got[0] != 0 || got[2] != 0 {
		t.Fatalf("expected remaining tied entries to take 0, got %v", got)
	}
}

func TestSortRanked_DenseRanksForEqualTotals(t *testing.T) {
	t.Parallel()

	entries := []Ranked{
		{Name: "anna", Total: 40},
		{Name: "bram", Total: 60},
		{Name: "cees", Total: 60},
		{Name: "dirk", Total: 10},
	}
	SortRanked(entries)

	wantOrder := []string{"bram", "cees", "anna", "dirk"}
	for i, name := range wantOrder {
		if entries[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, entries[i].Name)
		}
	}
}

func assertAmounts(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d amounts, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("amount %d: expected %d, got %d (all: %v)", i, want[i], got[i], got)
		}
	}
}
