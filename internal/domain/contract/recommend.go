package contract

import "fmt"

// GenerateRecommendations derives the ordered action list from the detected
// patterns and mapped risks. The ordering and conditional structure are a
// fixed contract: critical banner first, then per-pattern blocks, then the
// audit hint, then the closing legal-counsel line.
func GenerateRecommendations(detected []DetectedPattern, risks []ComplianceRisk) []string {
	present := patternSet(detected)

	var recs []string

	criticals := 0
	for _, r := range risks {
		if r.Severity == SeverityCritical {
			criticals++
		}
	}
	if criticals > 0 {
		recs = append(recs, fmt.Sprintf(
			"CRITICAL: Address %d critical compliance risks before deployment", criticals))
	}

	if present["custody"] {
		recs = append(recs,
			"Implement multi-signature custody with key distribution to separate entities",
			"Obtain MICA CASP authorization for custodial services",
			"Implement customer asset segregation with insurance/guarantee",
		)
	}

	if present["yield"] {
		recs = append(recs,
			"Conduct investment service classification analysis (MiFID2)",
			"If classified as investment service, obtain authorization",
			"Clearly disclose risks and variable return nature",
		)
	}

	if present["asset_backing"] {
		recs = append(recs,
			"Implement regular proof-of-reserves mechanism",
			"Use multi-source oracle attestation for reserve verification",
			"Define asset redemption procedures in contract code",
		)
	}

	if present["oracle"] {
		recs = append(recs,
			"Implement decentralized oracle network (not single-source)",
			"Include circuit-breaker for extreme price movements",
		)
	}

	if present["covenant"] {
		recs = append(recs,
			"Document all timelocks and their business purpose",
			"Ensure timelocks allow adequate dispute resolution periods",
		)
	}

	if len(detected) > 5 {
		recs = append(recs,
			"High contract complexity detected - conduct formal security audit")
	}

	recs = append(recs,
		"Engage legal counsel for final regulatory classification")

	return recs
}
