package contract

import (
	"regexp"
	"strings"
)

var hardcodedHexRe = regexp.MustCompile(`0x[0-9a-f]{32,}`)

var (
	validationVocab    = []string{"validate", "verify", "assert", "require", "check"}
	accessControlVocab = []string{"permission", "auth", "access_control", "owner", "role"}
	guardVocab         = []string{"mutex", "lock", "guard", "reentrancy_guard"}
)

// CheckSecurity applies every heuristic independently, in fixed order.
// Absence of a condition means absence of the concern; there are no
// placeholder entries.
func CheckSecurity(source string) []SecurityConcern {
	lowered := strings.ToLower(source)

	var concerns []SecurityConcern

	if hardcodedHexRe.MatchString(lowered) ||
		strings.Contains(lowered, "hardcoded") ||
		strings.Contains(lowered, "magic_number") {
		concerns = append(concerns, SecurityConcern{
			Issue:          "Potential hardcoded values",
			Severity:       SeverityMedium,
			Description:    "Hardcoded values may indicate inflexibility or security issues",
			Recommendation: "Review and parameterize hardcoded values",
		})
	}

	if !containsAny(lowered, validationVocab) {
		concerns = append(concerns, SecurityConcern{
			Issue:          "Insufficient input validation",
			Severity:       SeverityHigh,
			Description:    "No apparent validation of inputs",
			Recommendation: "Add comprehensive input validation",
		})
	}

	if !containsAny(lowered, accessControlVocab) {
		concerns = append(concerns, SecurityConcern{
			Issue:          "Missing access controls",
			Severity:       SeverityHigh,
			Description:    "No apparent authorization mechanism",
			Recommendation: "Implement role-based access control",
		})
	}

	// Custody code gets its own reentrancy test. This re-checks the raw
	// vocabulary rather than reusing the detector result: the custody rule
	// matches more words (hsm, segregate, ...) than qualify here.
	if strings.Contains(lowered, "custody") || strings.Contains(lowered, "wallet") {
		if !containsAny(lowered, guardVocab) {
			concerns = append(concerns, SecurityConcern{
				Issue:          "Potential reentrancy vulnerability in custody code",
				Severity:       SeverityCritical,
				Description:    "Custody code without reentrancy protection",
				Recommendation: "Implement reentrancy guards for all external calls",
			})
		}
	}

	return concerns
}

func containsAny(lowered string, vocab []string) bool {
	for _, w := range vocab {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
