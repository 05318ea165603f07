package formatting

import (
	"encoding/json"
	"fmt"
)

// PrettyJSON formats any value as indented JSON for human-readable display.
// It handles marshaling errors gracefully by falling back to fmt.Sprintf.
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// truncate shortens s to at most max characters, appending an ellipsis
// when something was cut.
func truncate(s string, max int) string {
	if len(s) <= max || max < 4 {
		return s
	}
	return s[:max-3] + "..."
}
