package cart

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/hotwheels-store/api/web"
	"github.com/irsalhamdi/hotwheels-store/api/weberr"
	"github.com/irsalhamdi/hotwheels-store/core/hotwheel"
	"github.com/irsalhamdi/hotwheels-store/validate"
	"github.com/jmoiron/sqlx"
)

type ItemNew struct {
	ID string `json:"id" validate:"required"`
}

func HandleShow(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, Load(ctx, sm).Summary(), http.StatusOK)
	}
}

func HandleCreateItem(db *sqlx.DB, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(err)
		}

		hw, err := hotwheel.Fetch(ctx, db, in.ID)
		if err != nil {
			return fmt.Errorf("fetching hotwheel[%s] for cart: %w", in.ID, err)
		}

		c := Load(ctx, sm)
		c.Add(hw)
		Save(ctx, sm, c)

		return web.Respond(ctx, w, c.Summary(), http.StatusOK)
	}
}

// HandleDeleteItem removes one entry by cart id. Unknown ids leave the cart
// unchanged; ids that were never generated here are not even looked up.
func HandleDeleteItem(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cartID := web.Param(r, "cart_id")

		c := Load(ctx, sm)
		if validate.CheckID(cartID) == nil && c.Remove(cartID) {
			Save(ctx, sm, c)
		}

		return web.Respond(ctx, w, c.Summary(), http.StatusOK)
	}
}

func HandleDelete(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		Drop(ctx, sm)
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
