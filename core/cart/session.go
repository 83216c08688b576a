package cart

import (
	"context"
	"encoding/gob"

	"github.com/alexedwards/scs/v2"
)

const sessionKey = "cart"

func init() {
	gob.Register(Cart{})
}

// Load returns the cart stored in the request session, or an empty one.
func Load(ctx context.Context, sm *scs.SessionManager) Cart {
	c, _ := sm.Get(ctx, sessionKey).(Cart)
	return c
}

func Save(ctx context.Context, sm *scs.SessionManager, c Cart) {
	sm.Put(ctx, sessionKey, c)
}

func Drop(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, sessionKey)
}
