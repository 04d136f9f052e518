package prompt

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/chain-compliance/internal/domain/advisor"
)

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a senior regulatory compliance advisor for blockchain and cryptocurrency projects. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- Use lowercase risk_level values: low, medium, high, critical.
- regulations_applicable lists every framework the project plausibly falls under (e.g. MICA, MiFID2, GDPR, AML/CFT, PSD2) with a one-sentence reason each.
- critical_issues lists only blockers that must be resolved before launch; keep items concise.
- compliance_roadmap is an ordered list of phases, each with a short description.
- Base your reasoning on the regulatory reference material when it is provided; do not invent article numbers.

Schema (example with empty values):
{
  "project_name": "<string>",
  "risk_level": "<low|medium|high|critical>",
  "regulations_applicable": [
    {"regulation": "<string>", "reason": "<string>"}
  ],
  "critical_issues": ["<string>"],
  "compliance_roadmap": [
    {"phase": "<string>", "description": "<string>"}
  ],
  "advice": "<string>"
}`
}

// GetUserPrompt builds the user message around the project brief and any
// retrieved regulatory context.
func GetUserPrompt(brief advisor.ProjectBrief) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the following project and respond with the JSON per schema.\n\n")
	fmt.Fprintf(&b, "Project: %s\n", brief.ProjectName)
	if brief.BusinessModel != "" {
		fmt.Fprintf(&b, "Business model: %s\n", brief.BusinessModel)
	}
	if brief.Jurisdiction != "" {
		fmt.Fprintf(&b, "Target jurisdiction: %s\n", brief.Jurisdiction)
	}
	fmt.Fprintf(&b, "\nDescription:\n%s\n", brief.Description)

	if brief.RegulatoryContext != "" {
		fmt.Fprintf(&b, "\nRegulatory reference material:\n%s", brief.RegulatoryContext)
	}

	return b.String()
}
