package config

import (
	"strings"
)

func landmarkKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// mergeLandmarks replaces base entries that share a name with an overlay
// entry, keeping base order, and appends the remaining overlay entries.
func mergeLandmarks(base []LandmarkConfig, overlay []LandmarkConfig) []LandmarkConfig {
	if len(base) == 0 {
		return append([]LandmarkConfig(nil), overlay...)
	}
	if len(overlay) == 0 {
		return append([]LandmarkConfig(nil), base...)
	}

	overlayByName := make(map[string]LandmarkConfig, len(overlay))
	for _, landmark := range overlay {
		name := landmarkKey(landmark.Name)
		if name == "" {
			continue
		}
		overlayByName[name] = landmark
	}

	merged := make([]LandmarkConfig, 0, len(base)+len(overlay))
	for _, landmark := range base {
		name := landmarkKey(landmark.Name)
		if replacement, ok := overlayByName[name]; ok {
			merged = append(merged, replacement)
			delete(overlayByName, name)
			continue
		}
		merged = append(merged, landmark)
	}

	for _, landmark := range overlay {
		name := landmarkKey(landmark.Name)
		if _, ok := overlayByName[name]; ok {
			merged = append(merged, landmark)
			delete(overlayByName, name)
		}
	}
	return merged
}
