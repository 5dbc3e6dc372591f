package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadCredentials reads the static credential table from a JSON file of the
// form {"<orgId>": "<accessCode>", ...}. Access codes may be plaintext or
// bcrypt hashes. The table is loaded once at startup and treated as
// read-only afterwards.
func LoadCredentials(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", path, err)
	}

	table := make(map[string]string)
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}

	for orgID, code := range table {
		if orgID == "" || code == "" {
			return nil, fmt.Errorf("credentials file %s: empty org id or access code", path)
		}
	}

	return table, nil
}
