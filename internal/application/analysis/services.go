package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/chain-compliance/internal/application"
	"github.com/bryanwahyu/chain-compliance/internal/domain/advisor"
	"github.com/bryanwahyu/chain-compliance/internal/domain/contract"
	"github.com/bryanwahyu/chain-compliance/internal/domain/regulation"
	"github.com/bryanwahyu/chain-compliance/internal/domain/reports"
)

// Service implements use-cases untuk analysis.
// Stateless apart from its wired ports; safe for concurrent use.
type Service struct {
	Analyzer  *contract.Analyzer
	Repo      reports.Repository
	Artifacts reports.ArtifactStore
	Advisor   advisor.Client
	Index     regulation.Index
	Clock     application.Clock
}

//
// ==== USE CASES ====
//

// Command untuk contract analysis
type AnalyzeContractCommand struct {
	TenantID     string
	ContractName string
	ContractCode string
	Witness      string
}

type AnalyzeContractResult struct {
	ID          string                   `json:"id"`
	Report      *contract.AnalysisReport `json:"report"`
	Rendered    string                   `json:"rendered"`
	ArtifactURL string                   `json:"artifact_url,omitempty"`
	DurationMS  int64                    `json:"duration_ms"`
}

// AnalyzeContract runs the analyzer, stores the rendered report as an
// artifact (best-effort) and persists a history record. Partial results are
// always returned: a failed upload or save never discards the report.
func (s *Service) AnalyzeContract(ctx context.Context, cmd AnalyzeContractCommand) (AnalyzeContractResult, error) {
	now := s.Clock.Now()
	start := time.Now()

	name := cmd.ContractName
	if name == "" {
		name = "Unknown"
	}

	var witness []byte
	if cmd.Witness != "" {
		witness = []byte(cmd.Witness)
	}

	report, err := s.Analyzer.Analyze(ctx, cmd.ContractCode, name, witness)
	if err != nil {
		return AnalyzeContractResult{}, err
	}

	id := fmt.Sprintf("%s-contract", uuid.New().String())
	rendered := report.Render()

	// Artifact upload is best-effort; the caller still gets the report.
	artifactURL := ""
	if s.Artifacts != nil {
		key := fmt.Sprintf("%s/reports/%s.txt", cmd.TenantID, id)
		url, uerr := s.Artifacts.Put(ctx, key, "text/plain; charset=utf-8", []byte(rendered))
		if uerr != nil {
			log.Printf("artifact upload failed for tenant=%s report=%s: %v", cmd.TenantID, id, uerr)
		} else {
			artifactURL = url
		}
	}

	duration := time.Since(start).Milliseconds()

	if s.Repo != nil {
		record := &reports.Record{
			ID:           reports.ReportID(id),
			TenantID:     cmd.TenantID,
			ContractName: name,
			AnalyzedAt:   now,
			Complexity:   string(report.Complexity.Level),
			Patterns:     joinPatterns(report.PatternsDetected),
			Counts:       reports.Tally(report),
			Compiled:     report.Compilation != nil && report.Compilation.Compiled,
			ArtifactURL:  artifactURL,
			ReportJSON:   marshalReport(report),
			DurationMS:   duration,
		}
		if serr := s.Repo.Save(ctx, record); serr != nil {
			log.Printf("report save failed for tenant=%s report=%s: %v", cmd.TenantID, id, serr)
		}
	}

	return AnalyzeContractResult{
		ID:          id,
		Report:      report,
		Rendered:    rendered,
		ArtifactURL: artifactURL,
		DurationMS:  duration,
	}, nil
}

// Command untuk project analysis
type AnalyzeProjectCommand struct {
	TenantID      string
	ProjectName   string
	Description   string
	BusinessModel string
	Jurisdiction  string
}

// AnalyzeProject retrieves regulatory context from the index (best-effort)
// and hands the brief to the advisor. The advisor's raw JSON is passed
// through untouched.
func (s *Service) AnalyzeProject(ctx context.Context, cmd AnalyzeProjectCommand) (json.RawMessage, error) {
	brief := advisor.ProjectBrief{
		ProjectName:   cmd.ProjectName,
		Description:   cmd.Description,
		BusinessModel: cmd.BusinessModel,
		Jurisdiction:  cmd.Jurisdiction,
	}

	if s.Index != nil {
		brief.RegulatoryContext = s.regulatoryContext(ctx, cmd.Description)
	}

	out, err := s.Advisor.AdviseProject(ctx, brief)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}

// regulatoryContext renders top search hits as prompt reference text. Index
// failures degrade to an empty context instead of failing the analysis.
func (s *Service) regulatoryContext(ctx context.Context, query string) string {
	var b strings.Builder

	regs, err := s.Index.SearchRegulations(ctx, query, "", 5)
	if err != nil {
		log.Printf("regulation search degraded: %v", err)
		return ""
	}
	for _, r := range regs {
		fmt.Fprintf(&b, "- %s %s (%s): %s\n", r.Regulation, r.Article, r.Title, r.Text)
	}

	cases, err := s.Index.SearchCases(ctx, query, 5)
	if err != nil {
		log.Printf("case search degraded: %v", err)
		return b.String()
	}
	for _, c := range cases {
		fmt.Fprintf(&b, "- Enforcement: %s (%d), %s\n", c.Company, c.Year, c.Violation)
	}

	return b.String()
}

// SearchRegulations lookup ranked articles by keyword.
func (s *Service) SearchRegulations(ctx context.Context, query, framework string, limit int) ([]regulation.Regulation, error) {
	if s.Index == nil {
		return nil, regulation.ErrIndexUnavailable
	}
	return s.Index.SearchRegulations(ctx, query, framework, normalizeLimit(limit))
}

// SearchCases lookup enforcement precedents by keyword.
func (s *Service) SearchCases(ctx context.Context, query string, limit int) ([]regulation.EnforcementCase, error) {
	if s.Index == nil {
		return nil, regulation.ErrIndexUnavailable
	}
	return s.Index.SearchCases(ctx, query, normalizeLimit(limit))
}

// AddRegulation ingests one regulatory article into the index.
func (s *Service) AddRegulation(ctx context.Context, r regulation.Regulation) error {
	if s.Index == nil {
		return regulation.ErrIndexUnavailable
	}
	return s.Index.AddRegulation(ctx, r)
}

// AddCase ingests one enforcement case into the index.
func (s *Service) AddCase(ctx context.Context, c regulation.EnforcementCase) error {
	if s.Index == nil {
		return regulation.ErrIndexUnavailable
	}
	return s.Index.AddCase(ctx, c)
}

// Latest ambil N report terakhir
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*reports.Record, error) {
	return s.Repo.Latest(ctx, tenant, normalizeLimit(limit))
}

// Get ambil 1 report by id
func (s *Service) Get(ctx context.Context, tenant string, id reports.ReportID) (*reports.Record, error) {
	return s.Repo.Get(ctx, tenant, id)
}

// Summary rekap hasil analysis N hari terakhir
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (map[string]any, error) {
	total, critical, high, medium, err := s.Repo.Summary(ctx, tenant, sinceDays)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_reports": total,
		"critical":      critical,
		"high":          high,
		"medium":        medium,
	}, nil
}

// helpers

func joinPatterns(detected []contract.DetectedPattern) string {
	names := make([]string, 0, len(detected))
	for _, p := range detected {
		names = append(names, p.Pattern)
	}
	return strings.Join(names, ",")
}

func marshalReport(r *contract.AnalysisReport) string {
	b, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
