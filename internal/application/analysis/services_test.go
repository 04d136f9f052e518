package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/chain-compliance/internal/domain/advisor"
	"github.com/bryanwahyu/chain-compliance/internal/domain/contract"
	"github.com/bryanwahyu/chain-compliance/internal/domain/regulation"
	"github.com/bryanwahyu/chain-compliance/internal/domain/reports"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeRepo struct {
	saved   []*reports.Record
	saveErr error
	records map[reports.ReportID]*reports.Record
}

func (r *fakeRepo) Save(ctx context.Context, rec *reports.Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, rec)
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, tenant string, id reports.ReportID) (*reports.Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return rec, nil
}

func (r *fakeRepo) Latest(ctx context.Context, tenant string, limit int) ([]*reports.Record, error) {
	if limit < len(r.saved) {
		return r.saved[:limit], nil
	}
	return r.saved, nil
}

func (r *fakeRepo) Summary(ctx context.Context, tenant string, sinceDays int) (int, int, int, int, error) {
	return 4, 1, 2, 3, nil
}

type fakeArtifacts struct {
	keys    []string
	bodies  []string
	putErr  error
	baseURL string
}

func (a *fakeArtifacts) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if a.putErr != nil {
		return "", a.putErr
	}
	a.keys = append(a.keys, key)
	a.bodies = append(a.bodies, string(data))
	return a.baseURL + key, nil
}

type fakeAdvisor struct {
	out     string
	err     error
	briefs  []advisor.ProjectBrief
}

func (f *fakeAdvisor) AdviseProject(ctx context.Context, brief advisor.ProjectBrief) (string, error) {
	f.briefs = append(f.briefs, brief)
	return f.out, f.err
}

type fakeIndex struct {
	regs      []regulation.Regulation
	cases     []regulation.EnforcementCase
	searchErr error
	added     []regulation.Regulation
	addedCase []regulation.EnforcementCase
}

func (f *fakeIndex) AddRegulation(ctx context.Context, r regulation.Regulation) error {
	f.added = append(f.added, r)
	return nil
}

func (f *fakeIndex) AddCase(ctx context.Context, c regulation.EnforcementCase) error {
	f.addedCase = append(f.addedCase, c)
	return nil
}

func (f *fakeIndex) SearchRegulations(ctx context.Context, query, framework string, limit int) ([]regulation.Regulation, error) {
	return f.regs, f.searchErr
}

func (f *fakeIndex) SearchCases(ctx context.Context, query string, limit int) ([]regulation.EnforcementCase, error) {
	return f.cases, f.searchErr
}

func (f *fakeIndex) Ready(ctx context.Context) error { return nil }

func newService(repo *fakeRepo, art *fakeArtifacts, adv *fakeAdvisor, idx *fakeIndex) *Service {
	svc := &Service{
		Analyzer: &contract.Analyzer{},
		Clock:    fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
	if repo != nil {
		svc.Repo = repo
	}
	if art != nil {
		svc.Artifacts = art
	}
	if adv != nil {
		svc.Advisor = adv
	}
	if idx != nil {
		svc.Index = idx
	}
	return svc
}

func TestAnalyzeContractPersistsRecord(t *testing.T) {
	repo := &fakeRepo{}
	art := &fakeArtifacts{baseURL: "https://cdn.local/"}
	svc := newService(repo, art, nil, nil)

	res, err := svc.AnalyzeContract(context.Background(), AnalyzeContractCommand{
		TenantID:     "acme",
		ContractName: "Vault",
		ContractCode: "custody wallet with multisig signers",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(res.ID, "-contract"))
	assert.NotNil(t, res.Report)
	assert.Contains(t, res.Rendered, "CONTRACT ANALYSIS REPORT")
	assert.Contains(t, res.Rendered, "Contract: Vault")
	assert.Equal(t, "https://cdn.local/acme/reports/"+res.ID+".txt", res.ArtifactURL)

	require.Len(t, repo.saved, 1)
	rec := repo.saved[0]
	assert.Equal(t, reports.ReportID(res.ID), rec.ID)
	assert.Equal(t, "acme", rec.TenantID)
	assert.Equal(t, "Vault", rec.ContractName)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), rec.AnalyzedAt)
	assert.Contains(t, rec.Patterns, "custody")
	assert.Contains(t, rec.Patterns, "multisig")
	assert.False(t, rec.Compiled)
	assert.Equal(t, rec.Counts, reports.Tally(res.Report))

	var stored contract.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(rec.ReportJSON), &stored))
	assert.Equal(t, res.Report.PatternsDetected, stored.PatternsDetected)

	require.Len(t, art.keys, 1)
	assert.Equal(t, res.Rendered, art.bodies[0])
}

func TestAnalyzeContractDefaultsName(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, nil, nil, nil)

	res, err := svc.AnalyzeContract(context.Background(), AnalyzeContractCommand{
		TenantID:     "acme",
		ContractCode: "plain text",
	})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", res.Report.ContractName)
}

func TestAnalyzeContractEmptySource(t *testing.T) {
	svc := newService(&fakeRepo{}, nil, nil, nil)

	_, err := svc.AnalyzeContract(context.Background(), AnalyzeContractCommand{
		TenantID:     "acme",
		ContractCode: "   ",
	})
	assert.ErrorIs(t, err, contract.ErrEmptySource)
}

func TestAnalyzeContractSurvivesArtifactFailure(t *testing.T) {
	repo := &fakeRepo{}
	art := &fakeArtifacts{putErr: errors.New("bucket offline")}
	svc := newService(repo, art, nil, nil)

	res, err := svc.AnalyzeContract(context.Background(), AnalyzeContractCommand{
		TenantID:     "acme",
		ContractCode: "oracle price feed",
	})
	require.NoError(t, err)
	assert.Empty(t, res.ArtifactURL)

	require.Len(t, repo.saved, 1)
	assert.Empty(t, repo.saved[0].ArtifactURL)
}

func TestAnalyzeContractSurvivesSaveFailure(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("db offline")}
	svc := newService(repo, nil, nil, nil)

	res, err := svc.AnalyzeContract(context.Background(), AnalyzeContractCommand{
		TenantID:     "acme",
		ContractCode: "oracle price feed",
	})
	require.NoError(t, err)
	assert.NotNil(t, res.Report)
}

func TestAnalyzeProjectPassesThroughAdvisorJSON(t *testing.T) {
	adv := &fakeAdvisor{out: `{"risk_level":"high"}`}
	svc := newService(nil, nil, adv, nil)

	out, err := svc.AnalyzeProject(context.Background(), AnalyzeProjectCommand{
		TenantID:    "acme",
		ProjectName: "DexCo",
		Description: "decentralized exchange",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"risk_level":"high"}`, string(out))

	require.Len(t, adv.briefs, 1)
	assert.Equal(t, "DexCo", adv.briefs[0].ProjectName)
	assert.Empty(t, adv.briefs[0].RegulatoryContext)
}

func TestAnalyzeProjectEnrichesBriefFromIndex(t *testing.T) {
	adv := &fakeAdvisor{out: `{}`}
	idx := &fakeIndex{
		regs: []regulation.Regulation{
			{Title: "Authorization", Article: "Art. 59", Text: "CASPs must be authorized", Regulation: "MICA"},
		},
		cases: []regulation.EnforcementCase{
			{Company: "ExampleCo", Violation: "unlicensed custody", Year: 2024},
		},
	}
	svc := newService(nil, nil, adv, idx)

	_, err := svc.AnalyzeProject(context.Background(), AnalyzeProjectCommand{
		Description: "custody service",
	})
	require.NoError(t, err)

	require.Len(t, adv.briefs, 1)
	cx := adv.briefs[0].RegulatoryContext
	assert.Contains(t, cx, "MICA Art. 59 (Authorization): CASPs must be authorized")
	assert.Contains(t, cx, "Enforcement: ExampleCo (2024), unlicensed custody")
}

func TestAnalyzeProjectDegradesOnIndexError(t *testing.T) {
	adv := &fakeAdvisor{out: `{}`}
	idx := &fakeIndex{searchErr: regulation.ErrIndexUnavailable}
	svc := newService(nil, nil, adv, idx)

	_, err := svc.AnalyzeProject(context.Background(), AnalyzeProjectCommand{
		Description: "custody service",
	})
	require.NoError(t, err)
	assert.Empty(t, adv.briefs[0].RegulatoryContext)
}

func TestAnalyzeProjectAdvisorError(t *testing.T) {
	adv := &fakeAdvisor{err: advisor.ErrQuotaExceeded}
	svc := newService(nil, nil, adv, nil)

	_, err := svc.AnalyzeProject(context.Background(), AnalyzeProjectCommand{Description: "x"})
	assert.ErrorIs(t, err, advisor.ErrQuotaExceeded)
}

func TestSearchWithoutIndex(t *testing.T) {
	svc := newService(nil, nil, nil, nil)

	_, err := svc.SearchRegulations(context.Background(), "custody", "", 10)
	assert.ErrorIs(t, err, regulation.ErrIndexUnavailable)

	_, err = svc.SearchCases(context.Background(), "custody", 10)
	assert.ErrorIs(t, err, regulation.ErrIndexUnavailable)

	assert.ErrorIs(t, svc.AddRegulation(context.Background(), regulation.Regulation{}), regulation.ErrIndexUnavailable)
	assert.ErrorIs(t, svc.AddCase(context.Background(), regulation.EnforcementCase{}), regulation.ErrIndexUnavailable)
}

func TestIngestForwardsToIndex(t *testing.T) {
	idx := &fakeIndex{}
	svc := newService(nil, nil, nil, idx)

	require.NoError(t, svc.AddRegulation(context.Background(), regulation.Regulation{Title: "Authorization"}))
	require.NoError(t, svc.AddCase(context.Background(), regulation.EnforcementCase{Company: "ExampleCo"}))

	require.Len(t, idx.added, 1)
	assert.Equal(t, "Authorization", idx.added[0].Title)
	require.Len(t, idx.addedCase, 1)
	assert.Equal(t, "ExampleCo", idx.addedCase[0].Company)
}

func TestSummaryShape(t *testing.T) {
	svc := newService(&fakeRepo{}, nil, nil, nil)

	got, err := svc.Summary(context.Background(), "acme", 7)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"total_reports": 4,
		"critical":      1,
		"high":          2,
		"medium":        3,
	}, got)
}
