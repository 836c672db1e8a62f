package roster

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day in the pool definition file ("2006-01-02").
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

// Team is a roster entity identified by its canonical name, unique within
// the pool. Aliases exist only for resolution and are curated, not learned.
type Team struct {
	Name     string   `json:"name" validate:"required"`
	Aliases  []string `json:"aliases"`
	StatsRef string   `json:"stats_ref"`
}

// Player carries the date from which its goals count, so a winter signing
// does not bring along goals scored for a previous club.
type Player struct {
	Name       string   `json:"name" validate:"required"`
	Aliases    []string `json:"aliases"`
	ActiveFrom Date     `json:"active_from"`
	StatsRef   string   `json:"stats_ref"`
}

type Participant struct {
	Name    string   `json:"name" validate:"required"`
	Teams   []Team   `json:"teams" validate:"required,min=1,dive"`
	Players []Player `json:"players" validate:"required,min=1,dive"`
}

type SourceCategory string

const (
	SourceLeague SourceCategory = "league"
	SourceUEFA   SourceCategory = "uefa"
	SourceScorer SourceCategory = "scorers"
)

// Source is one configured standings or statistics page. Sources are
// processed strictly in file order; that order is part of the contract.
type Source struct {
	Name        string         `json:"name" validate:"required"`
	URL         string         `json:"url" validate:"required,url"`
	Category    SourceCategory `json:"category" validate:"required,oneof=league uefa scorers"`
	Competition string         `json:"competition"`
}

// Definition is the versioned pool configuration: the closed roster plus
// the ordered source list and season metadata. Immutable during a run.
type Definition struct {
	Season       string        `json:"season" validate:"required"`
	Participants []Participant `json:"participants" validate:"required,min=1,dive"`
	Sources      []Source      `json:"sources" validate:"required,min=1,dive"`
}

// AllTeams returns every roster team in participant order.
func (d Definition) AllTeams() []Team {
	var out []Team
	for _, participant := range d.Participants {
		out = append(out, participant.Teams...)
	}
	return out
}

// AllPlayers returns every roster player in participant order.
func (d Definition) AllPlayers() []Player {
	var out []Player
	for _, participant := range d.Participants {
		out = append(out, participant.Players...)
	}
	return out
}
