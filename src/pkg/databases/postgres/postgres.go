package postgres

import (
	"errors"
	"fmt"
	"time"

	"load-tracking-service/src/pkg/log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"
)

// DBInterface hides the sqlx handle so repositories can be wired with a
// live connection or a test double.
type DBInterface interface {
	GetDB() (*sqlx.DB, error)
}

type Database struct {
	db *sqlx.DB
}

func (d *Database) GetDB() (*sqlx.DB, error) {
	if d.db == nil {
		return nil, errors.New("database connection is not initialized")
	}
	return d.db, nil
}

func InitConnection(v *viper.Viper, logger log.Log) (DBInterface, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		v.GetString("database.host"),
		v.GetInt("database.port"),
		v.GetString("database.username"),
		v.GetString("database.password"),
		v.GetString("database.name"),
		v.GetString("database.sslmode"),
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Error("postgres", fmt.Sprintf("failed to connect: %v", err), "InitConnection", "")
		return nil, err
	}

	db.SetMaxOpenConns(v.GetInt("database.pool.max_open"))
	db.SetMaxIdleConns(v.GetInt("database.pool.max_idle"))
	db.SetConnMaxLifetime(time.Duration(v.GetInt("database.pool.max_lifetime_minutes")) * time.Minute)

	logger.Info("postgres", "database connection established", "InitConnection", "")
	return &Database{db: db}, nil
}
