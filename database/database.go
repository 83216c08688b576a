package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/irsalhamdi/hotwheels-store/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var ErrDBNotFound = errors.New("not found")

func Open(cfg config.DB) (*sqlx.DB, error) {
	sslMode := "require"
	if cfg.DisableTLS {
		sslMode = "disable"
	}

	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host,
		Path:     cfg.Name,
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Open("postgres", u.String())
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	return db, nil
}

// StatusCheck returns nil once the database answers a round trip query.
// It retries pings until ctx is done.
func StatusCheck(ctx context.Context, db *sqlx.DB) error {
	var pingErr error
	for attempts := 1; ; attempts++ {
		pingErr = db.PingContext(ctx)
		if pingErr == nil {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("database not ready after %d attempts: %w", attempts, pingErr)
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	var ok bool
	return db.QueryRowContext(ctx, "SELECT true").Scan(&ok)
}
