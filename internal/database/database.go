package database

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"

	"github.com/mange/backend/internal/domain"
)

func Connect() (*sqlx.DB, error) {
	return Open(viper.GetString("DB_DSN"))
}

func Open(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty database DSN", domain.ErrConfiguration)
	}
	return sqlx.Connect("pgx", dsn)
}
