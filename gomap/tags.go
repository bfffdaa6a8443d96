package gomap

import (
	"fmt"
	"strings"
)

// TagKey is the struct tag key read by the record strategy.
const TagKey = "jdoc"

// ParseStructTag parses a struct tag string into key/value pairs.
// Handles comma-separated entries: `jdoc:"field=name,omitempty"`; an entry
// without '=' is a boolean flag.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = strings.TrimSpace(part[idx+1:])
		} else {
			result[part] = ""
		}
	}
	return result, nil
}
