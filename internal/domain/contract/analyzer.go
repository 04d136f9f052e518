package contract

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptySource is returned when there is no source text to analyze. The
// transport layer decides whether that is a 4xx.
var ErrEmptySource = errors.New("contract source is empty")

// Compiler port. The external compiler is best-effort and untrusted: it
// always answers with a structured result, never an error that could abort
// the analysis.
type Compiler interface {
	Compile(ctx context.Context, source string, witness []byte) CompilationResult
}

// Analyzer runs the full deterministic pipeline. It holds no mutable state,
// so one instance can serve concurrent analyses.
type Analyzer struct {
	Compiler Compiler // optional; nil leaves Compilation null
}

// Analyze produces a complete report for the given source. The compilation
// step runs independently of the pattern/risk stages and its failure never
// discards the rest of the result.
func (a *Analyzer) Analyze(ctx context.Context, source, name string, witness []byte) (*AnalysisReport, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}

	report := &AnalysisReport{
		ContractName: name,
		CodeSize:     len(source),
		LineCount:    len(strings.Split(source, "\n")),
	}

	report.PatternsDetected = DetectPatterns(source)
	report.Complexity = AssessComplexity(source)
	report.SecurityConcerns = CheckSecurity(source)
	report.ComplianceRisks = MapComplianceRisks(report.PatternsDetected)
	report.Recommendations = GenerateRecommendations(report.PatternsDetected, report.ComplianceRisks)

	if a.Compiler != nil {
		res := a.Compiler.Compile(ctx, source, witness)
		report.Compilation = &res
	}

	return report, nil
}
