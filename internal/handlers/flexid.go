package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flexID decodes a chatroom id sent either as a JSON number or a numeric string.
type flexID int64

func (id *flexID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("chatroom_id: %w", err)
	}
	*id = flexID(v)
	return nil
}

// queryID parses a numeric query parameter; ok is false when absent or malformed.
func queryID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
