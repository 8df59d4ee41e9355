package repository

import (
	"context"

	"github.com/mange/backend/internal/domain"
)

func (r *Repos) InsertArea(ctx context.Context, a *domain.Area) error {
	err := r.db.GetContext(ctx, &a.ID,
		`INSERT INTO areas (branch_id, name, responsible) VALUES ($1, $2, $3) RETURNING id`,
		a.BranchID, a.Name, a.Responsible)
	return translate(err)
}

func (r *Repos) AreaByID(ctx context.Context, id int64) (*domain.Area, error) {
	var a domain.Area
	err := r.db.GetContext(ctx, &a, `SELECT * FROM areas WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *Repos) ListAreas(ctx context.Context, branchID int64) ([]domain.Area, error) {
	var out []domain.Area
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM areas WHERE branch_id = $1 ORDER BY id`, branchID)
	return out, translate(err)
}

func (r *Repos) UpdateArea(ctx context.Context, a *domain.Area) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE areas SET name = $2, responsible = $3 WHERE id = $1`,
		a.ID, a.Name, a.Responsible)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (r *Repos) DeleteArea(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM areas WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (r *Repos) InsertEquipment(ctx context.Context, e *domain.Equipment) error {
	err := r.db.GetContext(ctx, &e.ID,
		`INSERT INTO equipment (area_id, model, brand, kind, avg_daily_kwh, maintenance_state, efficiency_rating, nominal_capacity_kw, lifespan_years, install_date, usage_frequency, critical_power) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
		e.AreaID, e.Model, e.Brand, e.Kind, e.AvgDailyKWh, e.MaintenanceState,
		e.EfficiencyRating, e.NominalCapacityKW, e.LifespanYears, e.InstallDate,
		e.UsageFrequency, e.CriticalPower)
	return translate(err)
}

func (r *Repos) EquipmentByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var e domain.Equipment
	err := r.db.GetContext(ctx, &e, `SELECT * FROM equipment WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *Repos) ListEquipment(ctx context.Context, areaID int64) ([]domain.Equipment, error) {
	var out []domain.Equipment
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM equipment WHERE area_id = $1 ORDER BY id`, areaID)
	return out, translate(err)
}

func (r *Repos) ListAllEquipment(ctx context.Context) ([]domain.Equipment, error) {
	var out []domain.Equipment
	err := r.db.SelectContext(ctx, &out, `SELECT * FROM equipment ORDER BY id`)
	return out, translate(err)
}

func (r *Repos) UpdateEquipment(ctx context.Context, e *domain.Equipment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE equipment SET model = $2, brand = $3, kind = $4, avg_daily_kwh = $5, maintenance_state = $6, efficiency_rating = $7, nominal_capacity_kw = $8, lifespan_years = $9, install_date = $10, usage_frequency = $11, critical_power = $12 WHERE id = $1`,
		e.ID, e.Model, e.Brand, e.Kind, e.AvgDailyKWh, e.MaintenanceState,
		e.EfficiencyRating, e.NominalCapacityKW, e.LifespanYears, e.InstallDate,
		e.UsageFrequency, e.CriticalPower)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (r *Repos) DeleteEquipment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}
