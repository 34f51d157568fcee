// Package queryutil turns unchecked client input into values that are safe to
// drive query construction. Nothing here ever uses a client string as a SQL
// identifier.
package queryutil

import (
	"encoding/json"
	"math"
)

const (
	KeyUsername  = "username"
	KeyBody      = "body"
	KeyArticleID = "article_id"
	KeyIncVotes  = "inc_votes"
)

// CheckValidUsername reports whether username is non-empty and made only of
// ASCII letters, digits, '_' and '-'.
func CheckValidUsername(username string) bool {
	if username == "" {
		return false
	}

	for _, c := range username {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}

	return true
}

// CheckValidPostedComment reports whether payload, once article_id is merged
// in (when given), has exactly the keys username, body and article_id.
// payload itself is left untouched.
func CheckValidPostedComment(payload map[string]any, articleID ...any) bool {
	merged := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		merged[k] = v
	}

	if len(articleID) > 0 {
		merged[KeyArticleID] = articleID[0]
	}

	return hasExactKeys(merged, KeyUsername, KeyBody, KeyArticleID)
}

// CheckValidVoteIncrease reports whether payload is exactly {inc_votes: <integer>}.
func CheckValidVoteIncrease(payload map[string]any) bool {
	if !hasExactKeys(payload, KeyIncVotes) {
		return false
	}

	_, ok := AsInteger(payload[KeyIncVotes])

	return ok
}

// AsInteger returns v as an int64 when it holds a whole number. Floats and
// json.Number count when they have no fractional part, matching how JSON
// clients send 2 and 2.0 alike.
func AsInteger(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float32:
		return floatToInteger(float64(n))
	case float64:
		return floatToInteger(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}

		f, err := n.Float64()
		if err != nil {
			return 0, false
		}

		return floatToInteger(f)
	default:
		return 0, false
	}
}

func floatToInteger(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}

	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

// FormatObjectToRows projects object onto keyOrder as a single row wrapped in
// an outer slice, the shape pgx.CopyFromRows and VALUES builders consume.
// Missing keys yield nil. object is not modified.
func FormatObjectToRows(object map[string]any, keyOrder []string) [][]any {
	row := make([]any, 0, len(keyOrder))
	for _, key := range keyOrder {
		row = append(row, object[key])
	}

	return [][]any{row}
}

func hasExactKeys(m map[string]any, keys ...string) bool {
	if len(m) != len(keys) {
		return false
	}

	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}

	return true
}
