package repository

import (
	"context"
	"time"

	"github.com/mange/backend/internal/domain"
)

func (r *Repos) ListRecords(ctx context.Context, branchID int64) ([]domain.Record, error) {
	var out []domain.Record
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM records WHERE branch_id = $1 ORDER BY date, id`, branchID)
	return out, translate(err)
}

// WindowConsumption returns the units consumed by a branch between the first
// and last record in the window. Record readings are cumulative meter values,
// so consumption over the window is the spread between them; fewer than two
// records means nothing was consumed within it.
func (r *Repos) WindowConsumption(ctx context.Context, branchID int64, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(MAX(reading) - MIN(reading), 0) FROM records WHERE branch_id = $1 AND date BETWEEN $2 AND $3`,
		branchID, start, end)
	return total, translate(err)
}

// OverLimitRecords lists every record across all branches that exceeded its
// branch limit, bounds inclusive, date ascending for determinism.
func (r *Repos) OverLimitRecords(ctx context.Context, start, end time.Time) ([]domain.Record, error) {
	var out []domain.Record
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM records WHERE over_limit > 0 AND date BETWEEN $1 AND $2 ORDER BY date, id`,
		start, end)
	return out, translate(err)
}
