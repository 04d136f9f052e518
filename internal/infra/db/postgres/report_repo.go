package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/chain-compliance/internal/domain/reports"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save insert/update report record
func (r *ReportRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO analysis_reports
(id, tenant_id, contract_name, analyzed_at, complexity, patterns,
 critical, high, medium, low, findings_total,
 compiled, artifact_url, report_json, duration_ms)
VALUES ($1,$2,$3,$4,$5,$6,
        $7,$8,$9,$10,$11,
        $12,$13,$14,$15)
ON CONFLICT (id) DO UPDATE SET
 complexity = EXCLUDED.complexity,
 patterns = EXCLUDED.patterns,
 critical = EXCLUDED.critical,
 high = EXCLUDED.high,
 medium = EXCLUDED.medium,
 low = EXCLUDED.low,
 findings_total = EXCLUDED.findings_total,
 compiled = EXCLUDED.compiled,
 artifact_url = EXCLUDED.artifact_url,
 report_json = EXCLUDED.report_json,
 duration_ms = EXCLUDED.duration_ms;`

	tenant := stringOrDash(rec.TenantID)
	name := stringOrDash(rec.ContractName)
	analyzed := rec.AnalyzedAt
	if analyzed.IsZero() {
		analyzed = time.Now()
	}
	reportJSON := rec.ReportJSON
	if reportJSON == "" {
		reportJSON = "{}"
	}

	_, err := r.db.ExecContext(ctx, q,
		rec.ID, tenant, name, analyzed, rec.Complexity, rec.Patterns,
		rec.Counts.Critical, rec.Counts.High, rec.Counts.Medium, rec.Counts.Low, rec.Counts.Total,
		rec.Compiled, rec.ArtifactURL, reportJSON, rec.DurationMS,
	)
	return err
}

// Get by ID + Tenant
func (r *ReportRepository) Get(ctx context.Context, tenant string, id domain.ReportID) (*domain.Record, error) {
	const q = `
SELECT id, tenant_id, contract_name, analyzed_at, complexity, patterns,
       critical, high, medium, low, findings_total,
       compiled, artifact_url, report_json, duration_ms
FROM analysis_reports
WHERE tenant_id=$1 AND id=$2
LIMIT 1;`
	return scanRecord(r.db.QueryRowContext(ctx, q, tenant, id))
}

// Latest reports per tenant
func (r *ReportRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, contract_name, analyzed_at, complexity, patterns,
       critical, high, medium, low, findings_total,
       compiled, artifact_url, report_json, duration_ms
FROM analysis_reports
WHERE tenant_id=$1
ORDER BY analyzed_at DESC, id DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summary counts analysis results since N days
func (r *ReportRepository) Summary(ctx context.Context, tenant string, sinceDays int) (int, int, int, int, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays)
	const q = `
SELECT COUNT(*) AS total_reports,
       COALESCE(SUM(critical),0) AS critical,
       COALESCE(SUM(high),0)     AS high,
       COALESCE(SUM(medium),0)   AS medium
FROM analysis_reports
WHERE tenant_id=$1 AND analyzed_at >= $2;`
	var t, c, h, m int
	if err := r.db.QueryRowContext(ctx, q, tenant, cut).Scan(&t, &c, &h, &m); err != nil {
		return 0, 0, 0, 0, err
	}
	return t, c, h, m, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	err := row.Scan(
		&rec.ID, &rec.TenantID, &rec.ContractName, &rec.AnalyzedAt, &rec.Complexity, &rec.Patterns,
		&rec.Counts.Critical, &rec.Counts.High, &rec.Counts.Medium, &rec.Counts.Low, &rec.Counts.Total,
		&rec.Compiled, &rec.ArtifactURL, &rec.ReportJSON, &rec.DurationMS,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
