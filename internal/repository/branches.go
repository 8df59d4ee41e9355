package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mange/backend/internal/domain"
)

func (r *Repos) InsertBranch(ctx context.Context, b *domain.Branch) error {
	err := r.db.GetContext(ctx, &b.ID,
		`INSERT INTO branches (name, kind, address, monthly_limit, extra_percent, extra, last_reading, reading) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		b.Name, b.Kind, b.Address, b.MonthlyLimit, b.ExtraPercent, b.Extra, b.LastReading, b.Reading)
	return translate(err)
}

func (r *Repos) BranchByID(ctx context.Context, id int64) (*domain.Branch, error) {
	var b domain.Branch
	err := r.db.GetContext(ctx, &b, `SELECT * FROM branches WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *Repos) BranchByName(ctx context.Context, name string) (*domain.Branch, error) {
	var b domain.Branch
	err := r.db.GetContext(ctx, &b, `SELECT * FROM branches WHERE name = $1`, name)
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *Repos) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	var out []domain.Branch
	err := r.db.SelectContext(ctx, &out, `SELECT * FROM branches ORDER BY id`)
	return out, translate(err)
}

func (r *Repos) UpdateBranch(ctx context.Context, b *domain.Branch) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE branches SET name = $2, kind = $3, address = $4, monthly_limit = $5, extra_percent = $6, extra = $7 WHERE id = $1`,
		b.ID, b.Name, b.Kind, b.Address, b.MonthlyLimit, b.ExtraPercent, b.Extra)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

// UpdateReading moves the branch's current meter value. The store's check
// constraint rejects values below the liquidated baseline.
func (r *Repos) UpdateReading(ctx context.Context, id, reading int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE branches SET reading = $2 WHERE id = $1`, id, reading)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (r *Repos) UpdateReadingByName(ctx context.Context, name string, reading int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE branches SET reading = $2 WHERE name = $1`, name, reading)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (r *Repos) DeleteBranch(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

// LockBranch fetches the branch inside tx with a row lock, serializing
// concurrent liquidations of the same branch.
func (r *Repos) LockBranch(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Branch, error) {
	var b domain.Branch
	err := tx.GetContext(ctx, &b, `SELECT * FROM branches WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// CloseWindow persists the end of a billing window: the record becomes
// permanent and the branch baseline catches up to the reading.
func (r *Repos) CloseWindow(ctx context.Context, tx *sqlx.Tx, rec *domain.Record) error {
	err := tx.GetContext(ctx, &rec.ID,
		`INSERT INTO records (branch_id, reading, cost, over_limit, date) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		rec.BranchID, rec.Reading, rec.Cost, rec.OverLimit, rec.Date)
	if err != nil {
		return translate(err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE branches SET reading = $2, last_reading = $2 WHERE id = $1`,
		rec.BranchID, rec.Reading)
	return translate(err)
}
