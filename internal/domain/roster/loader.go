package roster

import (
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

// LoadDefinition reads and validates the pool definition file. Any
// violation is fatal: a run must never start from a half-readable roster.
func LoadDefinition(path string) (Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read pool definition %s: %w", path, err)
	}

	var def Definition
	if err := sonic.Unmarshal(raw, &def); err != nil {
		return Definition{}, fmt.Errorf("decode pool definition %s: %w", path, err)
	}

	if err := validator.New().Struct(def); err != nil {
		return Definition{}, fmt.Errorf("validate pool definition %s: %w", path, err)
	}

	if err := checkUniqueNames(def); err != nil {
		return Definition{}, fmt.Errorf("validate pool definition %s: %w", path, err)
	}

	return def, nil
}

func checkUniqueNames(def Definition) error {
	participants := make(map[string]struct{}, len(def.Participants))
	teams := make(map[string]struct{})
	players := make(map[string]struct{})

	for _, participant := range def.Participants {
		key := strings.ToLower(strings.TrimSpace(participant.Name))
		if _, dup := participants[key]; dup {
			return fmt.Errorf("duplicate participant %q", participant.Name)
		}
		participants[key] = struct{}{}

		for _, team := range participant.Teams {
			key := strings.ToLower(strings.TrimSpace(team.Name))
			if _, dup := teams[key]; dup {
				return fmt.Errorf("duplicate team %q", team.Name)
			}
			teams[key] = struct{}{}
		}
		for _, player := range participant.Players {
			key := strings.ToLower(strings.TrimSpace(player.Name))
			if _, dup := players[key]; dup {
				return fmt.Errorf("duplicate player %q", player.Name)
			}
			players[key] = struct{}{}
		}
	}

	return nil
}
