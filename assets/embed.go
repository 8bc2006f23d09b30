package assets

import (
	"embed"
	"encoding/json"
)

//go:embed vocabulary.json
var FS embed.FS

// Vocabulary returns the embedded per-category word lists, keyed by
// category name, each list lowercase and ordered common-first.
func Vocabulary() (map[string][]string, error) {
	b, err := FS.ReadFile("vocabulary.json")
	if err != nil {
		return nil, err
	}
	out := map[string][]string{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
