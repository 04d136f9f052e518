package contract

// RiskTier intrinsic pattern risk enum
type RiskTier string

const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// Severity enum for concerns and risks
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ComplexityLevel enum
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// DetectedPattern is one catalog rule that matched the source
type DetectedPattern struct {
	Pattern     string   `json:"pattern"`
	Description string   `json:"description"`
	RiskTier    RiskTier `json:"risk_tier"`
}

// ComplexityAssessment value object
type ComplexityAssessment struct {
	Level            ComplexityLevel `json:"level"`
	FunctionCount    int             `json:"function_count"`
	ConditionalCount int             `json:"conditional_count"`
	LoopCount        int             `json:"loop_count"`
	TotalScore       int             `json:"total_score"`
}

// SecurityConcern is one anti-pattern finding
type SecurityConcern struct {
	Issue          string   `json:"issue"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// ComplianceRisk is a regulation-specific concern derived from a detected pattern
type ComplianceRisk struct {
	Regulation  string   `json:"regulation"`
	Risk        string   `json:"risk"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Mitigation  string   `json:"mitigation"`
}

// CompilationResult is the best-effort outcome of the external compiler
type CompilationResult struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Compiled     bool   `json:"compiled"`
	ErrorType    string `json:"error_type,omitempty"`
	Bytecode     string `json:"bytecode,omitempty"`
	BytecodeSize int    `json:"bytecode_size,omitempty"`
	HasAST       bool   `json:"has_ast,omitempty"`
}

// AnalysisReport aggregates one analysis invocation. Wholly owned by the
// caller; nothing in it is shared between calls.
type AnalysisReport struct {
	ContractName     string               `json:"contract_name"`
	CodeSize         int                  `json:"code_size"`
	LineCount        int                  `json:"line_count"`
	PatternsDetected []DetectedPattern    `json:"patterns_detected"`
	Complexity       ComplexityAssessment `json:"complexity"`
	SecurityConcerns []SecurityConcern    `json:"security_concerns"`
	ComplianceRisks  []ComplianceRisk     `json:"compliance_risks"`
	Recommendations  []string             `json:"recommendations"`
	Compilation      *CompilationResult   `json:"compilation"`
}
