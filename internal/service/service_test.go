package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newMockServices wires the facade to a mocked SQL connection.
func newMockServices(t *testing.T) (*Services, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "pgx")
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

// fakeAlerts records published alerts in place of SNS.
type fakeAlerts struct {
	overLimit   []string
	maintenance []int64
}

func (f *fakeAlerts) PublishOverLimit(branch string, overLimit int64, date time.Time) error {
	f.overLimit = append(f.overLimit, branch)
	return nil
}

func (f *fakeAlerts) PublishMaintenance(model string, equipmentID int64, action string) error {
	f.maintenance = append(f.maintenance, equipmentID)
	return nil
}
