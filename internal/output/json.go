package output

import (
	"encoding/json"
	"io"

	"tesscross-core/catalog"
	"tesscross/pkg/api"
)

// WriteJSON writes the buffered match list inside the v1 envelope.
func WriteJSON(w io.Writer, runID, generatedAt string, list []catalog.FlareRecord) error {
	env := api.MatchListV1{
		RunID:       runID,
		GeneratedAt: generatedAt,
		Matches:     make([]api.MatchV1, 0, len(list)),
	}
	for _, r := range list {
		env.Matches = append(env.Matches, ToAPIMatch(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
