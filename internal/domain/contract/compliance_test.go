package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detectedNamed(names ...string) []DetectedPattern {
	out := make([]DetectedPattern, 0, len(names))
	for _, n := range names {
		out = append(out, DetectedPattern{Pattern: n})
	}
	return out
}

type regSev struct {
	regulation string
	severity   Severity
}

func regSevPairs(risks []ComplianceRisk) []regSev {
	pairs := make([]regSev, 0, len(risks))
	for _, r := range risks {
		pairs = append(pairs, regSev{r.Regulation, r.Severity})
	}
	return pairs
}

func TestMapComplianceRisksPerPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    []regSev
	}{
		{"asset_backing", []regSev{{"MICA", SeverityCritical}, {"GDPR", SeverityMedium}}},
		{"custody", []regSev{{"MICA", SeverityCritical}, {"GDPR", SeverityHigh}}},
		{"yield", []regSev{{"MICA/MiFID2", SeverityCritical}, {"MICA", SeverityCritical}}},
		{"oracle", []regSev{{"Market Manipulation/Price Integrity", SeverityHigh}}},
		{"covenant", []regSev{{"Dispute Resolution", SeverityMedium}}},
		{"escrow", []regSev{{"AML/CFT", SeverityHigh}}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			risks := MapComplianceRisks(detectedNamed(tt.pattern))
			assert.Equal(t, tt.want, regSevPairs(risks))
		})
	}
}

func TestMapComplianceRisksUnmappedPatterns(t *testing.T) {
	// multisig and emergency carry no regulatory records.
	assert.Empty(t, MapComplianceRisks(detectedNamed("multisig", "emergency")))
}

func TestMapComplianceRisksFixedOrder(t *testing.T) {
	// Input order must not influence the output: evaluation runs
	// asset_backing, custody, yield, oracle, covenant, escrow.
	detected := detectedNamed("escrow", "covenant", "oracle", "yield", "custody", "asset_backing")

	risks := MapComplianceRisks(detected)
	require.Len(t, risks, 9)
	assert.Equal(t, []regSev{
		{"MICA", SeverityCritical},
		{"GDPR", SeverityMedium},
		{"MICA", SeverityCritical},
		{"GDPR", SeverityHigh},
		{"MICA/MiFID2", SeverityCritical},
		{"MICA", SeverityCritical},
		{"Market Manipulation/Price Integrity", SeverityHigh},
		{"Dispute Resolution", SeverityMedium},
		{"AML/CFT", SeverityHigh},
	}, regSevPairs(risks))
}

func TestMapComplianceRisksCustodyRecords(t *testing.T) {
	risks := MapComplianceRisks(detectedNamed("custody"))
	require.Len(t, risks, 2)

	assert.Equal(t, "Customer asset segregation requirement", risks[0].Risk)
	assert.Equal(t, "Implement segregated accounts and insurance", risks[0].Mitigation)
	assert.Equal(t, "Private key management", risks[1].Risk)
	assert.Equal(t, "Consider non-custodial alternatives", risks[1].Mitigation)
}
