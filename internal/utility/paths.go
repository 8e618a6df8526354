package utility

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// SetPath writes value at the dot separated path inside m, descending to
// arbitrary depth. Missing intermediate maps are created; an intermediate
// segment that exists but is not a map is an error, the document is left
// unchanged in that case.
func SetPath(m map[string]interface{}, path string, value interface{}) error {
	if m == nil {
		return fmt.Errorf("document must not be nil")
	}
	if path == "" {
		return fmt.Errorf("path must not be empty")
	}

	segments := strings.Split(path, ".")
	for _, seg := range segments {
		if seg == "" {
			return fmt.Errorf("path %q contains an empty segment", path)
		}
	}

	current := m
	for _, seg := range segments[:len(segments)-1] {
		next, exists := current[seg]
		if !exists || next == nil {
			child := map[string]interface{}{}
			current[seg] = child
			current = child
			continue
		}
		child, ok := toStringMap(next)
		if !ok {
			return fmt.Errorf("path %q crosses non-object segment %q", path, seg)
		}
		current[seg] = child
		current = child
	}

	current[segments[len(segments)-1]] = value
	return nil
}

// GetPath reads the value at the dot separated path inside m. The boolean
// reports whether the full path exists.
func GetPath(m map[string]interface{}, path string) (interface{}, bool) {
	if m == nil || path == "" {
		return nil, false
	}

	segments := strings.Split(path, ".")
	var current interface{} = m
	for _, seg := range segments {
		node, ok := toStringMap(current)
		if !ok {
			return nil, false
		}
		current, ok = node[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// toStringMap normalizes the map shapes a bson round-trip can produce.
func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case bson.M:
		return m, true
	default:
		return nil, false
	}
}
