package api

import "maps"

// MergeContext performs a shallow merge of overrides over defaults.
// Override keys replace default keys at the top level.
func MergeContext(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	maps.Copy(merged, defaults)
	maps.Copy(merged, overrides)
	return merged
}
