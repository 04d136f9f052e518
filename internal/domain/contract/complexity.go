package contract

import "strings"

// Structural markers counted by the complexity proxy. The trailing space is
// part of each token: "fn " must not match inside an identifier.
var (
	functionMarkers    = []string{"fn ", "def ", "function "}
	conditionalMarkers = []string{"if ", "case ", "match "}
	loopMarkers        = []string{"while ", "for ", "loop "}
)

// AssessComplexity counts structural markers case-insensitively and buckets
// the total. This is a coarse proxy, not cyclomatic complexity; the
// thresholds (<5 low, <15 medium, else high) are a fixed contract.
func AssessComplexity(source string) ComplexityAssessment {
	lowered := strings.ToLower(source)

	functions := countAny(lowered, functionMarkers)
	conditionals := countAny(lowered, conditionalMarkers)
	loops := countAny(lowered, loopMarkers)

	total := functions + conditionals + loops

	level := ComplexityHigh
	switch {
	case total < 5:
		level = ComplexityLow
	case total < 15:
		level = ComplexityMedium
	}

	return ComplexityAssessment{
		Level:            level,
		FunctionCount:    functions,
		ConditionalCount: conditionals,
		LoopCount:        loops,
		TotalScore:       total,
	}
}

func countAny(lowered string, tokens []string) int {
	n := 0
	for _, tok := range tokens {
		n += strings.Count(lowered, tok)
	}
	return n
}
