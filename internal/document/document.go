package document

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a file and decodes it as JSON. The top-level value must be an
// object; no further schema checking happens here, the extractors own the
// presence and shape of specific fields.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a JSON object", path)
	}
	return obj, nil
}
