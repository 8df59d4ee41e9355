package domain

import "time"

// Branch is a billable organizational unit ("sucursal") with its own meter.
// LastReading is the baseline of the open billing window; Reading is the
// current meter value and never drops below LastReading.
type Branch struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Kind         string `db:"kind" json:"kind"`
	Address      string `db:"address" json:"address"`
	MonthlyLimit int64  `db:"monthly_limit" json:"monthly_limit"`
	ExtraPercent int64  `db:"extra_percent" json:"extra_percent"`
	Extra        int64  `db:"extra" json:"extra"`
	LastReading  int64  `db:"last_reading" json:"last_reading"`
	Reading      int64  `db:"reading" json:"reading"`
}

// Area is a sub-division of a branch with a responsible person.
type Area struct {
	ID          int64  `db:"id" json:"id"`
	BranchID    int64  `db:"branch_id" json:"branch_id"`
	Name        string `db:"name" json:"name"`
	Responsible string `db:"responsible" json:"responsible"`
}

type Equipment struct {
	ID                int64     `db:"id" json:"id"`
	AreaID            int64     `db:"area_id" json:"area_id"`
	Model             string    `db:"model" json:"model"`
	Brand             string    `db:"brand" json:"brand"`
	Kind              string    `db:"kind" json:"kind"`
	AvgDailyKWh       float64   `db:"avg_daily_kwh" json:"avg_daily_kwh"`
	MaintenanceState  string    `db:"maintenance_state" json:"maintenance_state"`
	EfficiencyRating  float64   `db:"efficiency_rating" json:"efficiency_rating"`
	NominalCapacityKW float64   `db:"nominal_capacity_kw" json:"nominal_capacity_kw"`
	LifespanYears     int64     `db:"lifespan_years" json:"lifespan_years"`
	InstallDate       time.Time `db:"install_date" json:"install_date"`
	UsageFrequency    string    `db:"usage_frequency" json:"usage_frequency"`
	CriticalPower     bool      `db:"critical_power" json:"critical_power"`
}

// Record ("registro") is the permanent result of liquidating a branch's
// billing window. Immutable once written.
type Record struct {
	ID        int64     `db:"id" json:"id"`
	BranchID  int64     `db:"branch_id" json:"branch_id"`
	Reading   int64     `db:"reading" json:"reading"`
	Cost      int64     `db:"cost" json:"cost"`
	OverLimit int64     `db:"over_limit" json:"over_limit"`
	Date      time.Time `db:"date" json:"date"`
}

type Group struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type User struct {
	ID           int64  `db:"id" json:"id"`
	GroupID      *int64 `db:"group_id" json:"group_id"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// Token is the opaque credential issued on login, one per user. Replaced on
// every successful login, no expiry.
type Token struct {
	ID     int64  `db:"id" json:"id"`
	UserID int64  `db:"user_id" json:"user_id"`
	Value  string `db:"value" json:"value"`
}

// Equipment maintenance states understood by the maintenance review.
const (
	MaintenanceOK       = "ok"
	MaintenanceDue      = "due"
	MaintenanceDegraded = "degraded"
)
