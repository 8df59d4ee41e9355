// Package service is the client facade over the store: billing windows,
// aggregate queries, authentication, reading ingest and maintenance review.
// Each operation is one transaction; there is no partial-failure handling
// because there are no partial failures to handle.
package service

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mange/backend/internal/repository"
)

// AlertPublisher receives notable billing and maintenance events. Satisfied
// by cloud.AlertClient; nil disables alerting.
type AlertPublisher interface {
	PublishOverLimit(branch string, overLimit int64, date time.Time) error
	PublishMaintenance(model string, equipmentID int64, action string) error
}

type Services struct {
	Repos       *repository.Repos
	Billing     *BillingService
	Auth        *AuthService
	Readings    *ReadingService
	Maintenance *MaintenanceService
}

func New(db *sqlx.DB) *Services {
	repos := repository.New(db)
	return &Services{
		Repos:       repos,
		Billing:     &BillingService{db: db, repos: repos},
		Auth:        &AuthService{repos: repos},
		Readings:    &ReadingService{repos: repos},
		Maintenance: &MaintenanceService{repos: repos, now: time.Now},
	}
}

// EnableAlerts routes over-limit and maintenance events to pub.
func (s *Services) EnableAlerts(pub AlertPublisher) {
	s.Billing.alerts = pub
	s.Maintenance.alerts = pub
}
