package prompt

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bryanwahyu/chain-compliance/internal/domain/advisor"
)

// LocalClassifier is the deterministic fallback advisor used when no LLM
// credentials are configured. It produces the same JSON shape as the model.
type LocalClassifier struct{}

func (LocalClassifier) AdviseProject(ctx context.Context, brief advisor.ProjectBrief) (string, error) {
	return ClassifyProject(brief), nil
}

// ClassifyProject inspects the project description for regulatory trigger
// vocabulary and returns a JSON string matching the advisor schema. It never
// prints; it only returns the JSON string.
func ClassifyProject(brief advisor.ProjectBrief) string {
	type Applicable struct {
		Regulation string `json:"regulation"`
		Reason     string `json:"reason"`
	}

	type Phase struct {
		Phase       string `json:"phase"`
		Description string `json:"description"`
	}

	type Output struct {
		ProjectName           string       `json:"project_name"`
		RiskLevel             string       `json:"risk_level"`
		RegulationsApplicable []Applicable `json:"regulations_applicable"`
		CriticalIssues        []string     `json:"critical_issues"`
		ComplianceRoadmap     []Phase      `json:"compliance_roadmap"`
		Advice                string       `json:"advice"`
	}

	lower := strings.ToLower(brief.Description + " " + brief.BusinessModel)

	out := Output{
		ProjectName:    brief.ProjectName,
		CriticalIssues: []string{},
	}

	// Framework detectors: keyword vocabulary, applicability reason, and
	// whether a hit is a launch blocker.
	detectors := []struct {
		keywords []string
		reg      string
		reason   string
		blocker  string // empty when a hit is not a critical issue
	}{
		{
			[]string{"custody", "custodial", "hold funds", "wallet service", "safekeeping"},
			"MICA",
			"Custodial services over crypto-assets require CASP authorization.",
			"Custody of customer assets without CASP authorization",
		},
		{
			[]string{"stablecoin", "asset-backed", "asset backed", "pegged", "reserve"},
			"MICA",
			"Asset-referenced and e-money tokens fall under MICA issuance rules.",
			"Token issuance without MICA authorization",
		},
		{
			[]string{"yield", "staking", "interest", "apy", "returns", "dividend"},
			"MiFID2",
			"Promised returns may classify the offering as an investment service.",
			"Yield promises without investment service classification analysis",
		},
		{
			[]string{"exchange", "trading", "order book", "swap", "market making"},
			"MICA",
			"Operating a trading venue for crypto-assets requires authorization.",
			"",
		},
		{
			[]string{"personal data", "kyc", "identity", "user data", "profiling"},
			"GDPR",
			"Processing of personal data triggers GDPR obligations.",
			"",
		},
		{
			[]string{"cross-border", "remittance", "transfer", "anonymous", "mixer", "privacy coin"},
			"AML/CFT",
			"Value transfer services must implement AML/CFT monitoring and reporting.",
			"",
		},
		{
			[]string{"payment", "merchant", "checkout", "settlement"},
			"PSD2",
			"Payment services within the EU fall under PSD2 licensing.",
			"",
		},
	}

	seen := map[string]bool{}
	blockers := 0

	for _, d := range detectors {
		hit := false
		for _, kw := range d.keywords {
			if strings.Contains(lower, kw) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		key := d.reg + "|" + d.reason
		if !seen[key] {
			out.RegulationsApplicable = append(out.RegulationsApplicable, Applicable{
				Regulation: d.reg,
				Reason:     d.reason,
			})
			seen[key] = true
		}
		if d.blocker != "" {
			out.CriticalIssues = append(out.CriticalIssues, d.blocker)
			blockers++
		}
	}

	switch {
	case blockers > 0:
		out.RiskLevel = "critical"
	case len(out.RegulationsApplicable) >= 3:
		out.RiskLevel = "high"
	case len(out.RegulationsApplicable) > 0:
		out.RiskLevel = "medium"
	default:
		out.RiskLevel = "low"
	}

	out.ComplianceRoadmap = []Phase{
		{"Phase 1", "Map the business model against the applicable frameworks above"},
		{"Phase 2", "Obtain required authorizations before any customer onboarding"},
		{"Phase 3", "Stand up ongoing monitoring, reporting and audit processes"},
	}

	if blockers > 0 {
		out.Advice = "Immediate action required: resolve the critical issues before launch and engage counsel for authorization filings."
	} else if len(out.RegulationsApplicable) > 0 {
		out.Advice = "Review the applicable frameworks with counsel and document the classification analysis before launch."
	} else {
		out.Advice = "No framework triggers detected from the description alone; validate the classification with legal counsel."
	}

	b, err := json.Marshal(out)
	if err != nil {
		fb := Output{ProjectName: brief.ProjectName, RiskLevel: "medium",
			CriticalIssues: []string{}, Advice: "Classification error; retry with a fuller description."}
		data, _ := json.Marshal(fb)
		return string(data)
	}
	return string(b)
}
