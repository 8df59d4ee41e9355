package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mange/backend/internal/domain"
)

var equipmentColumns = []string{
	"id", "area_id", "model", "brand", "kind", "avg_daily_kwh",
	"maintenance_state", "efficiency_rating", "nominal_capacity_kw",
	"lifespan_years", "install_date", "usage_frequency", "critical_power",
}

func TestReviewEquipment(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	addUnit := func(rows *sqlmock.Rows, id int64, state string, efficiency float64, lifespan int64, installed time.Time, critical bool) {
		rows.AddRow(id, int64(1), "AC-9000", "frigo", "hvac", 12.5, state, efficiency, 4.0, lifespan, installed, "daily", critical)
	}

	t.Run("flags expired, degraded and inefficient units", func(t *testing.T) {
		svcs, mock := newMockServices(t)
		svcs.Maintenance.now = func() time.Time { return now }

		rows := sqlmock.NewRows(equipmentColumns)
		addUnit(rows, 1, domain.MaintenanceOK, 0.9, 10, now.AddDate(-12, 0, 0), false) // past lifespan
		addUnit(rows, 2, domain.MaintenanceDegraded, 0.9, 10, now.AddDate(-1, 0, 0), false)
		addUnit(rows, 3, domain.MaintenanceOK, 0.5, 10, now.AddDate(-1, 0, 0), false) // inefficient
		addUnit(rows, 4, domain.MaintenanceOK, 0.9, 10, now.AddDate(-1, 0, 0), false) // healthy
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM equipment ORDER BY id`)).
			WillReturnRows(rows)

		findings, err := svcs.Maintenance.ReviewEquipment(context.Background())
		require.NoError(t, err)
		require.Len(t, findings, 3)
		assert.Equal(t, ActionReplace, findings[0].Action)
		assert.Equal(t, ActionService, findings[1].Action)
		assert.Equal(t, ActionInspect, findings[2].Action)
	})

	t.Run("critical-power units raise alerts", func(t *testing.T) {
		svcs, mock := newMockServices(t)
		svcs.Maintenance.now = func() time.Time { return now }
		alerts := &fakeAlerts{}
		svcs.EnableAlerts(alerts)

		rows := sqlmock.NewRows(equipmentColumns)
		addUnit(rows, 1, domain.MaintenanceDue, 0.9, 10, now.AddDate(-1, 0, 0), true)
		addUnit(rows, 2, domain.MaintenanceDue, 0.9, 10, now.AddDate(-1, 0, 0), false)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM equipment ORDER BY id`)).
			WillReturnRows(rows)

		findings, err := svcs.Maintenance.ReviewEquipment(context.Background())
		require.NoError(t, err)
		assert.Len(t, findings, 2)
		assert.Equal(t, []int64{1}, alerts.maintenance)
	})

	t.Run("healthy fleet yields no findings", func(t *testing.T) {
		svcs, mock := newMockServices(t)
		svcs.Maintenance.now = func() time.Time { return now }

		rows := sqlmock.NewRows(equipmentColumns)
		addUnit(rows, 1, domain.MaintenanceOK, 0.95, 10, now.AddDate(-2, 0, 0), true)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM equipment ORDER BY id`)).
			WillReturnRows(rows)

		findings, err := svcs.Maintenance.ReviewEquipment(context.Background())
		require.NoError(t, err)
		assert.Empty(t, findings)
	})
}
