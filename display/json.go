package display

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON marshals JSON with indentation and without HTML escaping, so
// quotes and angle brackets in converted text stay readable.
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
