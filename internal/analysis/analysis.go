// Package analysis scores partner reports so moderators see the worst
// ones first.
package analysis

import "studyzen/backend/internal/config"

// GetWeight returns the severity weight for one report reason, or 0 for an
// unrecognised reason.
func GetWeight(reason string) int {
	return config.ReportWeights[reason]
}

// Score returns the combined weight of a set of report reasons.
func Score(reasons []string) int {
	total := 0
	for _, reason := range reasons {
		total += GetWeight(reason)
	}
	return total
}
