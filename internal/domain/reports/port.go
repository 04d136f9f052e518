package reports

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, tenant string, id ReportID) (*Record, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*Record, error)
	Summary(ctx context.Context, tenant string, sinceDays int) (int, int, int, int, error)
}

// ArtifactStore port (interface untuk penyimpanan rendered reports)
type ArtifactStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
