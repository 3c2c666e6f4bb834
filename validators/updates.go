package validators

import "slices"

// UpdateValidator reports whether every key in a partial update body is in
// the allowed set. One disallowed key rejects the whole request, the valid
// keys next to it are not applied either.
func UpdateValidator(body map[string]any, allowed []string) bool {
	for key := range body {
		if !slices.Contains(allowed, key) {
			return false
		}
	}

	return true
}
