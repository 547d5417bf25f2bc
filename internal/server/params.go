package server

import "fmt"

// Parameter extraction helpers for MCP arguments and batch step maps.

// StringParam returns params[key] as a string, or defaultVal if absent.
func StringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// YAML and JSON may decode bare numbers
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

// IntParam returns params[key] as an int, or defaultVal if absent or not numeric.
func IntParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return defaultVal
}

// BoolParam returns params[key] as a bool, or defaultVal if absent.
func BoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// requireInt is IntParam for mandatory arguments.
func requireInt(params map[string]interface{}, key string) (int, error) {
	if _, ok := params[key]; !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch params[key].(type) {
	case int, int64, float64:
		return IntParam(params, key, 0), nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}
