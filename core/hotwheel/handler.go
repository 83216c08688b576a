package hotwheel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/hotwheels-store/api/web"
	"github.com/irsalhamdi/hotwheels-store/api/weberr"
	"github.com/irsalhamdi/hotwheels-store/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// HandleTest reports whether the gateway can reach the catalog. The gateway
// itself answering is the reachability signal, so a database failure is
// reported in the body and not as an error status.
func HandleTest(db *sqlx.DB, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		health := Health{
			Message:  "Backend is working!",
			Database: DBConnected,
		}

		n, err := Count(ctx, db)
		if err != nil {
			log.WithError(err).Warn("catalog database unreachable")
			health.Database = DBFailed
		}
		health.Count = n

		return web.Respond(ctx, w, health, http.StatusOK)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		q := QueryFrom(r.URL.Query())
		if err := validate.Check(q); err != nil {
			return weberr.BadRequest(err)
		}

		hws, err := List(ctx, db, q)
		if err != nil {
			return fmt.Errorf("listing hotwheels: %w", err)
		}

		return web.Respond(ctx, w, hws, http.StatusOK)
	}
}

// HandleShow passes the id through untouched: the hosted table owns the id
// format, so a malformed id fails like any other lookup.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		hw, err := Fetch(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching hotwheel[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, hw, http.StatusOK)
	}
}
