// Package roster loads the static user roster the ledger engine is
// initialized from. The file is a JSON array of {name, rating} records;
// users enter the registry in file order with a zero balance.
package roster

import (
	"encoding/json"
	"fmt"
	"os"

	"billing/internal/models"
)

// Load reads and validates the roster file at path.
func Load(path string) ([]models.RosterEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	var entries []models.RosterEntry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode roster file %q: %w", path, err)
	}

	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("roster entry %d has an empty name", i)
		}
		if e.Rating < 0 {
			return nil, fmt.Errorf("roster entry %q has negative rating %d", e.Name, e.Rating)
		}
	}
	return entries, nil
}
