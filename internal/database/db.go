package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Connection pool sizing. Traffic is short-lived CRUD requests with a
// 5-second handler timeout, so a modest fixed pool is enough; idle equals
// open so bursts never pay the reconnect cost.
const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Open builds the MySQL DSN, configures the pool and verifies
// connectivity before returning.
//
// The DSN parameters are load-bearing: parseTime=true lets the
// repositories scan created_at/updated_at DATETIME columns straight into
// time.Time, loc=UTC pins those scans to the zone the schema's
// CURRENT_TIMESTAMP defaults use, and utf8mb4 covers tags and comment
// text outside the basic plane.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cred, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}
