package roster

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/voetbalpool/voetbalpool/internal/platform/logging"
)

// Substring matching only kicks in for aliases longer than this once
// normalized; shorter fragments produce too many accidental hits.
const minSubstringAliasLen = 4

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a display name for comparison: decompose,
// strip diacritics, lowercase, drop punctuation, collapse whitespace.
func Normalize(name string) string {
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

type aliasEntry struct {
	canonical string
	aliases   []string
}

// Resolver matches free-text names scraped from source tables against the
// closed roster. Exact alias matching applies to both kinds; substring
// matching applies to teams only, because short player surnames produce
// unacceptable false positives.
type Resolver struct {
	teams   []aliasEntry
	players []aliasEntry
	logger  *logging.Logger
}

func NewResolver(def Definition, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}

	r := &Resolver{logger: logger}
	for _, team := range def.AllTeams() {
		r.teams = append(r.teams, newAliasEntry(team.Name, team.Aliases))
	}
	for _, player := range def.AllPlayers() {
		r.players = append(r.players, newAliasEntry(player.Name, player.Aliases))
	}

	return r
}

func newAliasEntry(canonical string, aliases []string) aliasEntry {
	normalized := make([]string, 0, len(aliases)+1)
	normalized = append(normalized, Normalize(canonical))
	for _, alias := range aliases {
		if n := Normalize(alias); n != "" {
			normalized = append(normalized, n)
		}
	}
	return aliasEntry{canonical: canonical, aliases: normalized}
}

// ResolveTeam maps a scraped team name to its canonical roster name.
func (r *Resolver) ResolveTeam(raw string) (string, bool) {
	name := Normalize(raw)
	if name == "" {
		return "", false
	}

	for _, entry := range r.teams {
		if entry.matchesExact(name) {
			return entry.canonical, true
		}
	}
	for _, entry := range r.teams {
		if entry.matchesSubstring(name) {
			return entry.canonical, true
		}
	}

	r.reportMiss("team", raw, name, r.teams)
	return "", false
}

// ResolvePlayer maps a scraped player name to its canonical roster name.
// Exact alias matches only.
func (r *Resolver) ResolvePlayer(raw string) (string, bool) {
	name := Normalize(raw)
	if name == "" {
		return "", false
	}

	for _, entry := range r.players {
		if entry.matchesExact(name) {
			return entry.canonical, true
		}
	}

	r.reportMiss("player", raw, name, r.players)
	return "", false
}

func (e aliasEntry) matchesExact(normalized string) bool {
	for _, alias := range e.aliases {
		if alias == normalized {
			return true
		}
	}
	return false
}

func (e aliasEntry) matchesSubstring(normalized string) bool {
	for _, alias := range e.aliases {
		if len(alias) < minSubstringAliasLen {
			continue
		}
		if strings.Contains(normalized, alias) || strings.Contains(alias, normalized) {
			return true
		}
	}
	return false
}

// reportMiss logs fuzzy near-matches as a curation aid for the alias
// tables. Suggestions are diagnostics only and never influence matching.
func (r *Resolver) reportMiss(kind, raw, normalized string, entries []aliasEntry) {
	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		candidates = append(candidates, entry.canonical)
	}

	ranks := fuzzy.RankFindNormalizedFold(normalized, candidates)
	if len(ranks) == 0 {
		r.logger.Debug("name resolution miss", "kind", kind, "name", raw)
		return
	}

	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
		}
	}
	r.logger.Debug("name resolution miss",
		"kind", kind,
		"name", raw,
		"closest", best.Target,
	)
}
