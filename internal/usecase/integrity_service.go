package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/voetbalpool/voetbalpool/internal/domain/snapshot"
)

// Violation is one reason a candidate snapshot was rejected.
type Violation struct {
	Pool        string
	Participant string
	Reason      string
	Old         int
	New         int
}

func (v Violation) String() string {
	if v.Participant == "" {
		return fmt.Sprintf("%s: %s", v.Pool, v.Reason)
	}
	return fmt.Sprintf("%s/%s: %s (old=%d new=%d)", v.Pool, v.Participant, v.Reason, v.Old, v.New)
}

// IntegrityService validates a candidate snapshot before it may replace
// the stored one. It checks schema validity and, against the previous
// snapshot, that no participant total regressed and no participant
// disappeared. A run that trips the gate persists nothing.
type IntegrityService struct {
	validate *validator.Validate
}

func NewIntegrityService() *IntegrityService {
	return &IntegrityService{validate: validator.New()}
}

// Check returns the full list of violations so a rejected run logs every
// problem at once, not just the first.
func (s *IntegrityService) Check(ctx context.Context, next snapshot.PoolResult, prev *snapshot.PoolResult) []Violation {
	_, span := startSpan(ctx, "IntegrityService.Check")
	defer span.End()

	var violations []Violation

	if err := s.validate.Struct(next); err != nil {
		violations = append(violations, Violation{
			Pool:   "snapshot",
			Reason: fmt.Sprintf("schema validation failed: %v", err),
		})
	}

	if prev == nil {
		return violations
	}

	nextTeams := make(map[string]int, len(next.TeamPool))
	for _, entry := range next.TeamPool {
		nextTeams[entry.Participant] = entry.TotalPoints
	}
	for _, entry := range prev.TeamPool {
		points, ok := nextTeams[entry.Participant]
		if !ok {
			violations = append(violations, Violation{
				Pool:        "team_pool",
				Participant: entry.Participant,
				Reason:      "participant missing from new result",
				Old:         entry.TotalPoints,
			})
			continue
		}
		if points < entry.TotalPoints {
			violations = append(violations, Violation{
				Pool:        "team_pool",
				Participant: entry.Participant,
				Reason:      "total points decreased",
				Old:         entry.TotalPoints,
				New:         points,
			})
		}
	}

	nextGoals := make(map[string]int, len(next.GoalsPool))
	for _, entry := range next.GoalsPool {
		nextGoals[entry.Participant] = entry.TotalGoals
	}
	for _, entry := range prev.GoalsPool {
		goals, ok := nextGoals[entry.Participant]
		if !ok {
			violations = append(violations, Violation{
				Pool:        "goals_pool",
				Participant: entry.Participant,
				Reason:      "participant missing from new result",
				Old:         entry.TotalGoals,
			})
			continue
		}
		if goals < entry.TotalGoals {
			violations = append(violations, Violation{
				Pool:        "goals_pool",
				Participant: entry.Participant,
				Reason:      "total goals decreased",
				Old:         entry.TotalGoals,
				New:         goals,
			})
		}
	}

	return violations
}
