package contract

// riskTable maps pattern names to their fixed regulatory risk records. The
// regulation and severity strings are a published contract; downstream
// consumers match on the literal values, including the compound tags.
var riskTable = map[string][]ComplianceRisk{
	"asset_backing": {
		{
			Regulation:  "MICA",
			Risk:        "Asset classification and authorization",
			Description: "Asset-backed tokens require MICA authorization",
			Severity:    SeverityCritical,
			Mitigation:  "Obtain CASP authorization before deployment",
		},
		{
			Regulation:  "GDPR",
			Risk:        "Reserve attestation and oracle data",
			Description: "Oracle data may contain personal information",
			Severity:    SeverityMedium,
			Mitigation:  "Ensure GDPR compliance for attestation mechanisms",
		},
	},
	"custody": {
		{
			Regulation:  "MICA",
			Risk:        "Customer asset segregation requirement",
			Description: "MICA requires strict segregation of customer funds",
			Severity:    SeverityCritical,
			Mitigation:  "Implement segregated accounts and insurance",
		},
		{
			Regulation:  "GDPR",
			Risk:        "Private key management",
			Description: "Key storage may violate data minimization principles",
			Severity:    SeverityHigh,
			Mitigation:  "Consider non-custodial alternatives",
		},
	},
	"yield": {
		{
			Regulation:  "MICA/MiFID2",
			Risk:        "Promised returns on crypto-assets",
			Description: "Fixed yield promises may trigger investment service classification",
			Severity:    SeverityCritical,
			Mitigation:  "Obtain investment service authorization if applicable",
		},
		{
			Regulation:  "MICA",
			Risk:        "Unregistered staking services",
			Description: "Staking services require CASP authorization",
			Severity:    SeverityCritical,
			Mitigation:  "Obtain CASP authorization for staking services",
		},
	},
	"oracle": {
		{
			Regulation:  "Market Manipulation/Price Integrity",
			Risk:        "Oracle manipulation vulnerability",
			Description: "Single-source oracles are vulnerable to manipulation",
			Severity:    SeverityHigh,
			Mitigation:  "Use decentralized oracle networks with multiple sources",
		},
	},
	"covenant": {
		{
			Regulation:  "Dispute Resolution",
			Risk:        "Dispute period and customer protection",
			Description: "Timelocks may prevent timely dispute resolution",
			Severity:    SeverityMedium,
			Mitigation:  "Ensure adequate dispute resolution timeframes",
		},
	},
	"escrow": {
		{
			Regulation:  "AML/CFT",
			Risk:        "Cross-border transaction monitoring",
			Description: "Escrow mechanisms must comply with AML/CFT rules",
			Severity:    SeverityHigh,
			Mitigation:  "Implement transaction monitoring and STR reporting",
		},
	},
}

// riskOrder fixes the evaluation order of the mapper. Not alphabetical and
// not input order.
var riskOrder = []string{"asset_backing", "custody", "yield", "oracle", "covenant", "escrow"}

// MapComplianceRisks emits the fixed risk records for every detected pattern
// that has table entries. Patterns without entries (multisig, emergency)
// contribute nothing.
func MapComplianceRisks(detected []DetectedPattern) []ComplianceRisk {
	present := patternSet(detected)

	var risks []ComplianceRisk
	for _, name := range riskOrder {
		if present[name] {
			risks = append(risks, riskTable[name]...)
		}
	}
	return risks
}
