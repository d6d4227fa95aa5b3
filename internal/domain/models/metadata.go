package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// Metadata is the open key-value map stored on documents and folder
// aggregates. It maps to a JSONB column; a nil map is stored as an
// empty object.
type Metadata map[string]any

// Merge returns a shallow merge of m and patch. m is not modified;
// a malformed (nil) receiver is treated as empty, matching the
// tolerant handling of legacy rows whose metadata column holds
// something other than an object.
func (m Metadata) Merge(patch Metadata) Metadata {
	merged := make(Metadata, len(m)+len(patch))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// Canonical returns a deterministic string form of the metadata,
// suitable for change comparison. Keys are sorted; values are JSON
// encoded.
func (m Metadata) Canonical() string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, err := json.Marshal(m[k])
		if err != nil {
			valJSON = []byte("null")
		}
		b.Write(keyJSON)
		b.WriteByte(':')
		b.Write(valJSON)
	}
	b.WriteByte('}')
	return b.String()
}

// StringValue returns the string stored under key, or "" when the key
// is absent or holds a non-string value.
func (m Metadata) StringValue(key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
