package contract

import (
	"fmt"
	"strings"
)

// Render formats the report as readable text: header, pattern list,
// complexity summary, then numbered concern/risk/recommendation sections.
func (r *AnalysisReport) Render() string {
	var b strings.Builder

	b.WriteString("CONTRACT ANALYSIS REPORT\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "Contract: %s\n", r.ContractName)
	fmt.Fprintf(&b, "Code Size: %d bytes\n", r.CodeSize)
	fmt.Fprintf(&b, "Lines: %d\n\n", r.LineCount)

	fmt.Fprintf(&b, "PATTERNS DETECTED (%d):\n", len(r.PatternsDetected))
	for _, p := range r.PatternsDetected {
		fmt.Fprintf(&b, "- %s: %s (Risk: %s)\n", p.Pattern, p.Description, p.RiskTier)
	}

	fmt.Fprintf(&b, "\nCOMPLEXITY: %s\n", strings.ToUpper(string(r.Complexity.Level)))
	fmt.Fprintf(&b, "  Functions: %d\n", r.Complexity.FunctionCount)
	fmt.Fprintf(&b, "  Conditionals: %d\n", r.Complexity.ConditionalCount)
	fmt.Fprintf(&b, "  Loops: %d\n", r.Complexity.LoopCount)

	if len(r.SecurityConcerns) > 0 {
		fmt.Fprintf(&b, "\nSECURITY CONCERNS (%d):\n", len(r.SecurityConcerns))
		for i, c := range r.SecurityConcerns {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, strings.ToUpper(string(c.Severity)), c.Issue)
			fmt.Fprintf(&b, "   -> %s\n", c.Recommendation)
		}
	}

	if len(r.ComplianceRisks) > 0 {
		fmt.Fprintf(&b, "\nCOMPLIANCE RISKS (%d):\n", len(r.ComplianceRisks))
		for i, risk := range r.ComplianceRisks {
			fmt.Fprintf(&b, "%d. [%s] %s: %s\n", i+1, strings.ToUpper(string(risk.Severity)), risk.Regulation, risk.Risk)
			fmt.Fprintf(&b, "   -> %s\n", risk.Mitigation)
		}
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nRECOMMENDATIONS (%d):\n", len(r.Recommendations))
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}

	if r.Compilation != nil {
		fmt.Fprintf(&b, "\nCOMPILATION: %s\n", r.Compilation.Status)
		if r.Compilation.Message != "" {
			fmt.Fprintf(&b, "  %s\n", r.Compilation.Message)
		}
		if r.Compilation.BytecodeSize > 0 {
			fmt.Fprintf(&b, "  Bytecode: %d bytes\n", r.Compilation.BytecodeSize)
		}
	}

	return b.String()
}
