// Package tagcodec stores an ordered tag list in a single scalar column.
//
// Tags are encoded as a JSON array of strings. Decoding never fails: null,
// corrupt or wrongly typed input decodes to an empty list.
package tagcodec

import (
	"database/sql"
	"encoding/json"
)

// Encode serializes tags preserving order and exact values.
func Encode(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		// []string always marshals
		return "[]"
	}
	return string(data)
}

// Decode parses a scalar produced by Encode.
func Decode(v any) []string {
	switch raw := v.(type) {
	case string:
		return decode([]byte(raw))
	case []byte:
		return decode(raw)
	case sql.NullString:
		if !raw.Valid {
			return []string{}
		}
		return decode([]byte(raw.String))
	case *string:
		if raw == nil {
			return []string{}
		}
		return decode([]byte(*raw))
	default:
		return []string{}
	}
}

func decode(data []byte) []string {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
