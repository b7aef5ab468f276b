package domain

import "github.com/tidwall/gjson"

// Record is a single row of a dataset split as served by the provider.
// Raw keeps the row object verbatim so column extraction stays lazy.
type Record struct {
	Index          int64    // 0-based position within the split
	Raw            []byte   // row JSON object
	TruncatedCells []string // columns the server truncated, if any
}

// Field extracts a string column by path (nested paths use dots). The
// second return is false when the path is absent or not a JSON string.
func (r Record) Field(path string) (string, bool) {
	v := gjson.GetBytes(r.Raw, path)
	if v.Type != gjson.String {
		return "", false
	}
	return v.String(), true
}

// Truncated reports whether the server truncated the named cell.
func (r Record) Truncated(path string) bool {
	for _, cell := range r.TruncatedCells {
		if cell == path {
			return true
		}
	}
	return false
}
