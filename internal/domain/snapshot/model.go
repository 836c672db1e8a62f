package snapshot

// PoolResult is the persisted snapshot: both ranked pools plus run
// metadata. It either replaces the stored snapshot wholesale after the
// integrity gate approves it, or is discarded.
type PoolResult struct {
	LastUpdated string       `json:"last_updated" validate:"required"`
	Season      string       `json:"season" validate:"required"`
	TeamPool    []TeamEntry  `json:"team_pool" validate:"dive"`
	GoalsPool   []GoalsEntry `json:"goals_pool" validate:"dive"`
}

type TeamEntry struct {
	Participant string     `json:"participant" validate:"required"`
	TotalPoints int        `json:"total_points" validate:"gte=0"`
	Rank        int        `json:"rank" validate:"gte=1"`
	Payout      int        `json:"payout" validate:"gte=0"`
	Teams       []TeamLine `json:"teams" validate:"dive"`
}

type TeamLine struct {
	Name              string `json:"name" validate:"required"`
	LeaguePoints      int    `json:"league_points" validate:"gte=0"`
	UEFAPoints        int    `json:"uefa_points" validate:"gte=0"`
	DomesticCupPoints int    `json:"domestic_cup_points" validate:"gte=0"`
}

type GoalsEntry struct {
	Participant string       `json:"participant" validate:"required"`
	TotalGoals  int          `json:"total_goals" validate:"gte=0"`
	Rank        int          `json:"rank" validate:"gte=1"`
	Payout      int          `json:"payout" validate:"gte=0"`
	Players     []PlayerLine `json:"players" validate:"dive"`
}

type PlayerLine struct {
	Name  string `json:"name" validate:"required"`
	Goals int    `json:"goals" validate:"gte=0"`
}
