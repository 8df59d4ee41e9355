package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/mange/backend/internal/billing"
	"github.com/mange/backend/internal/domain"
	"github.com/mange/backend/internal/repository"
)

// Surcharge defaults applied when a branch is created without explicit
// tariff parameters.
const (
	DefaultExtraPercent = 15
	DefaultExtra        = 20
)

type BillingService struct {
	db     *sqlx.DB
	repos  *repository.Repos
	alerts AlertPublisher
}

// CreateBranch persists a branch with the default tariff surcharges.
func (s *BillingService) CreateBranch(ctx context.Context, name string, lastReading, reading, limit int64) (*domain.Branch, error) {
	if reading < lastReading {
		return nil, fmt.Errorf("%w: %d < %d", domain.ErrInvalidReading, reading, lastReading)
	}
	b := &domain.Branch{
		Name:         name,
		MonthlyLimit: limit,
		ExtraPercent: DefaultExtraPercent,
		Extra:        DefaultExtra,
		LastReading:  lastReading,
		Reading:      reading,
	}
	if err := s.repos.InsertBranch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Liquidate closes the branch's current billing window: it computes cost and
// over-limit from the caller's reading, writes exactly one permanent record
// and resets the baseline. The branch row is locked for the duration of the
// transaction, so two concurrent liquidations of one branch serialize and the
// later one bills only the consumption since the earlier.
func (s *BillingService) Liquidate(ctx context.Context, b *domain.Branch, date time.Time) (*domain.Record, error) {
	if b.ID == 0 {
		return nil, fmt.Errorf("%w: branch %q has no identity", domain.ErrReferentialIntegrity, b.Name)
	}
	if date.IsZero() {
		date = time.Now()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	locked, err := s.repos.LockBranch(ctx, tx, b.ID)
	if err != nil {
		return nil, err
	}
	if b.Reading < locked.LastReading {
		return nil, fmt.Errorf("%w: %d < %d", domain.ErrInvalidReading, b.Reading, locked.LastReading)
	}

	rec := &domain.Record{
		BranchID:  b.ID,
		Reading:   b.Reading,
		Cost:      billing.Cost(b.Reading, locked.LastReading, locked.ExtraPercent, locked.Extra),
		OverLimit: billing.OverLimit(b.Reading, locked.MonthlyLimit),
		Date:      date,
	}
	if err := s.repos.CloseWindow(ctx, tx, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	b.LastReading = b.Reading

	if rec.OverLimit > 0 && s.alerts != nil {
		if err := s.alerts.PublishOverLimit(locked.Name, rec.OverLimit, date); err != nil {
			log.Error().Err(err).Str("branch", locked.Name).Msg("over-limit alert failed")
		}
	}
	return rec, nil
}

// TotalConsumption sums the units the branch consumed across its records in
// [start, end], bounds inclusive. Zero when the window holds no consumption.
func (s *BillingService) TotalConsumption(ctx context.Context, b *domain.Branch, start, end time.Time) (int64, error) {
	if b.ID == 0 {
		return 0, fmt.Errorf("%w: branch %q has no identity", domain.ErrReferentialIntegrity, b.Name)
	}
	return s.repos.WindowConsumption(ctx, b.ID, start, end)
}

// OverConsumption lists every record in the window that exceeded its branch
// limit, across all branches, date ascending.
func (s *BillingService) OverConsumption(ctx context.Context, start, end time.Time) ([]domain.Record, error) {
	return s.repos.OverLimitRecords(ctx, start, end)
}
