package contract

import "strings"

// DetectPatterns scans the source against every catalog rule and returns one
// DetectedPattern per matching rule, in catalog order. Presence is boolean:
// repeated vocabulary never changes the output.
func DetectPatterns(source string) []DetectedPattern {
	lowered := strings.ToLower(source)

	var detected []DetectedPattern
	for _, rule := range Catalog {
		if rule.Matches(lowered) {
			detected = append(detected, DetectedPattern{
				Pattern:     rule.Name,
				Description: rule.Description,
				RiskTier:    rule.RiskTier,
			})
		}
	}
	return detected
}

// patternSet builds a name lookup for the downstream mappers.
func patternSet(detected []DetectedPattern) map[string]bool {
	set := make(map[string]bool, len(detected))
	for _, p := range detected {
		set[p.Pattern] = true
	}
	return set
}
