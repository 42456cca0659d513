package repository

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// NormalizeSkills trims entries, drops blanks and removes case-insensitive
// duplicates while keeping the first spelling.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// decodeSkills reads a JSON-array TEXT column. Malformed content is logged and
// treated as no skills so one bad row cannot break a listing.
func decodeSkills(raw *string, logger *zap.Logger, table string, id int64) []string {
	if raw == nil {
		return []string{}
	}
	s := strings.TrimSpace(*raw)
	if s == "" || s == "null" {
		return []string{}
	}

	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		if logger != nil {
			logger.Warn("malformed skills column, using empty list",
				zap.String("table", table),
				zap.Int64("id", id),
				zap.Error(err),
			)
		}
		return []string{}
	}
	return NormalizeSkills(out)
}

func encodeSkills(in []string) (string, error) {
	b, err := json.Marshal(NormalizeSkills(in))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
