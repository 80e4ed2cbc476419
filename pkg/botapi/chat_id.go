package botapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ChatID addresses a chat either by numeric identifier or by public @username.
//
// Exactly one of ID and Username is populated on a valid value.
type ChatID struct {
	ID       int64
	Username string
}

// ID returns a ChatID addressing a chat by numeric identifier.
func ID(id int64) ChatID {
	return ChatID{ID: id}
}

// Username returns a ChatID addressing a public chat by username.
//
// A leading "@" is optional.
func Username(username string) ChatID {
	return ChatID{Username: strings.TrimPrefix(strings.TrimSpace(username), "@")}
}

// IsUsername reports whether the value addresses a chat by username.
func (c ChatID) IsUsername() bool {
	return c.Username != ""
}

// IsZero reports whether neither form is populated.
func (c ChatID) IsZero() bool {
	return c.ID == 0 && c.Username == ""
}

// Validate checks that exactly one form is populated.
func (c ChatID) Validate() error {
	switch {
	case c.ID == 0 && c.Username == "":
		return invalidParam("chat_id is required")
	case c.ID != 0 && c.Username != "":
		return invalidParam("chat_id must be either a number or a username, got both")
	default:
		return nil
	}
}

// String renders the identifier the way the Bot API accepts it.
func (c ChatID) String() string {
	if c.Username != "" {
		return "@" + c.Username
	}

	return strconv.FormatInt(c.ID, 10)
}

// MarshalJSON encodes the value as a JSON number or an "@username" string.
func (c ChatID) MarshalJSON() ([]byte, error) {
	if c.Username != "" {
		return json.Marshal("@" + c.Username)
	}

	return json.Marshal(c.ID)
}

// UnmarshalJSON decodes a JSON number, a numeric string, or an "@username" string.
func (c *ChatID) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*c = ChatID{ID: id}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode chat_id: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*c = ChatID{ID: parsed}
		return nil
	}
	*c = Username(raw)

	return nil
}
