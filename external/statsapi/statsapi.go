package statsapi

import (
	"time"

	"github.com/voetbalpool/voetbalpool/internal/domain/scoring"
)

type goalsEnvelope struct {
	Data []goalItem `json:"data"`
}

type goalItem struct {
	Date        string `json:"date"`
	Minute      int    `json:"minute"`
	Type        string `json:"type"`
	Competition string `json:"competition"`
}

type cupsEnvelope struct {
	Data []cupItem `json:"data"`
}

type cupItem struct {
	Category    string `json:"category"`
	Competition string `json:"competition"`
	Milestone   string `json:"milestone"`
}

func mapGoalEvents(items []goalItem) []scoring.GoalEvent {
	events := make([]scoring.GoalEvent, 0, len(items))
	for _, item := range items {
		date, err := time.Parse("2006-01-02", item.Date)
		if err != nil {
			// A goal without a parseable date cannot be checked against
			// the player's active-from date; drop it rather than guess.
			continue
		}
		events = append(events, scoring.GoalEvent{
			Date:        date,
			Minute:      item.Minute,
			Type:        scoring.ParseGoalType(item.Type),
			Competition: item.Competition,
		})
	}
	return events
}

func mapCupProgress(items []cupItem) []scoring.CupProgress {
	progress := make([]scoring.CupProgress, 0, len(items))
	for _, item := range items {
		milestone, ok := scoring.ParseMilestone(item.Milestone)
		if !ok {
			continue
		}

		switch item.Category {
		case "domestic":
			progress = append(progress, scoring.CupProgress{
				Category:  scoring.CupDomestic,
				Milestone: milestone,
			})
		case "uefa":
			competition, ok := scoring.ParseUEFACompetition(item.Competition)
			if !ok {
				continue
			}
			progress = append(progress, scoring.CupProgress{
				Category:    scoring.CupUEFA,
				Competition: competition,
				Milestone:   milestone,
			})
		}
	}
	return progress
}
