package reports

import (
	"time"

	"github.com/bryanwahyu/chain-compliance/internal/domain/contract"
)

// ID tipe untuk Report
type ReportID string

// SeverityCounts tallies security concerns and compliance risks of one report.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// Tally counts every severity carried by the report, security concerns and
// compliance risks combined.
func Tally(r *contract.AnalysisReport) SeverityCounts {
	var c SeverityCounts
	add := func(sev contract.Severity) {
		switch sev {
		case contract.SeverityCritical:
			c.Critical++
		case contract.SeverityHigh:
			c.High++
		case contract.SeverityMedium:
			c.Medium++
		default:
			c.Low++
		}
		c.Total++
	}
	for _, sc := range r.SecurityConcerns {
		add(sc.Severity)
	}
	for _, cr := range r.ComplianceRisks {
		add(cr.Severity)
	}
	return c
}

// Record is the persisted trace of one contract analysis.
type Record struct {
	ID           ReportID       `json:"id"`
	TenantID     string         `json:"tenant_id"`
	ContractName string         `json:"contract_name"`
	AnalyzedAt   time.Time      `json:"analyzed_at"`
	Complexity   string         `json:"complexity"`
	Patterns     string         `json:"patterns"` // comma-separated pattern names
	Counts       SeverityCounts `json:"counts"`
	Compiled     bool           `json:"compiled"`
	ArtifactURL  string         `json:"artifact_url,omitempty"`
	ReportJSON   string         `json:"report_json,omitempty"`
	DurationMS   int64          `json:"duration_ms"`
}
