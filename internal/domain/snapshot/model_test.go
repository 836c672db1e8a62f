package snapshot

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

// The snapshot file is read by external tooling, so the field names are a
// published contract.
func TestPoolResult_WireFormat(t *testing.T) {
	t.Parallel()

	result := PoolResult{
		LastUpdated: "2026-09-01T10:00:00Z",
		Season:      "2026-2027",
		TeamPool: []TeamEntry{
			{
				Participant: "Anna",
				TotalPoints: 95,
				Rank:        1,
				Payout:      250,
				Teams: []TeamLine{
					{Name: "Feyenoord", LeaguePoints: 60, UEFAPoints: 20, DomesticCupPoints: 15},
				},
			},
		},
		GoalsPool: []GoalsEntry{
			{
				Participant: "Anna",
				TotalGoals:  14,
				Rank:        1,
				Payout:      250,
				Players:     []PlayerLine{{Name: "Giménez", Goals: 14}},
			},
		},
	}

	data, err := sonic.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "last_updated")
	require.Contains(t, decoded, "season")
	require.Contains(t, decoded, "team_pool")
	require.Contains(t, decoded, "goals_pool")

	teamPool, ok := decoded["team_pool"].([]any)
	require.True(t, ok)
	require.Len(t, teamPool, 1)
	entry, ok := teamPool[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Anna", entry["participant"])
	require.EqualValues(t, 95, entry["total_points"])
	require.EqualValues(t, 1, entry["rank"])
	require.EqualValues(t, 250, entry["payout"])

	lines, ok := entry["teams"].([]any)
	require.True(t, ok)
	line, ok := lines[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Feyenoord", line["name"])
	require.EqualValues(t, 60, line["league_points"])
	require.EqualValues(t, 20, line["uefa_points"])
	require.EqualValues(t, 15, line["domestic_cup_points"])

	goalsPool, ok := decoded["goals_pool"].([]any)
	require.True(t, ok)
	goalsEntry, ok := goalsPool[0].(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 14, goalsEntry["total_goals"])
}
