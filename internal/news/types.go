package news

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the state of the board's single status indicator.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// Item is one news entry as returned by the feed endpoint.
type Item struct {
	Title     string `json:"title"`
	Href      string `json:"href"`
	Featured  bool   `json:"featured"`
	Subtitle  string `json:"subtitle"`
	CreatedAt string `json:"createdAt"`
	Error     string `json:"error,omitempty"`
}

// UnmarshalJSON decodes an item leniently. Scalars and arrays decode to the
// zero Item; text fields accept any scalar; featured follows
// JSON truthiness.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*it = Item{}
		return nil
	}

	*it = Item{
		Title:     text(raw["title"]),
		Href:      text(raw["href"]),
		Featured:  truthy(raw["featured"]),
		Subtitle:  text(raw["subtitle"]),
		CreatedAt: text(raw["createdAt"]),
		Error:     text(raw["error"]),
	}
	return nil
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		// objects and arrays are truthy
		return true
	}
}
