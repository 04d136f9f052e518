package mysql

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
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 complexity=VALUES(complexity), patterns=VALUES(patterns),
 critical=VALUES(critical), high=VALUES(high), medium=VALUES(medium), low=VALUES(low),
 findings_total=VALUES(findings_total),
 compiled=VALUES(compiled), artifact_url=VALUES(artifact_url),
 report_json=VALUES(report_json), duration_ms=VALUES(duration_ms);
`
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

// Get ambil 1 report by id
func (r *ReportRepository) Get(ctx context.Context, tenant string, id domain.ReportID) (*domain.Record, error) {
	const q = `
SELECT id, tenant_id, contract_name, analyzed_at, complexity, patterns,
       critical, high, medium, low, findings_total,
       compiled, artifact_url, report_json, duration_ms
FROM analysis_reports
WHERE tenant_id=? AND id=?;
`
	return scanRecord(r.db.QueryRowContext(ctx, q, tenant, id))
}

// Latest ambil N report terakhir
func (r *ReportRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, contract_name, analyzed_at, complexity, patterns,
       critical, high, medium, low, findings_total,
       compiled, artifact_url, report_json, duration_ms
FROM analysis_reports
WHERE tenant_id=?
ORDER BY analyzed_at DESC, id DESC
LIMIT ?;
`
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

// Summary rekap severity counts N hari terakhir
func (r *ReportRepository) Summary(ctx context.Context, tenant string, sinceDays int) (int, int, int, int, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	const q = `
SELECT COUNT(*), COALESCE(SUM(critical),0), COALESCE(SUM(high),0), COALESCE(SUM(medium),0)
FROM analysis_reports
WHERE tenant_id=? AND analyzed_at >= DATE_SUB(NOW(), INTERVAL ? DAY);
`
	var total, critical, high, medium int
	err := r.db.QueryRowContext(ctx, q, tenant, sinceDays).Scan(&total, &critical, &high, &medium)
	return total, critical, high, medium, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var analyzed time.Time
	err := row.Scan(
		&rec.ID, &rec.TenantID, &rec.ContractName, &analyzed, &rec.Complexity, &rec.Patterns,
		&rec.Counts.Critical, &rec.Counts.High, &rec.Counts.Medium, &rec.Counts.Low, &rec.Counts.Total,
		&rec.Compiled, &rec.ArtifactURL, &rec.ReportJSON, &rec.DurationMS,
	)
	if err != nil {
		return nil, err
	}
	rec.AnalyzedAt = analyzed
	return &rec, nil
}
