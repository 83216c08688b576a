package checkout

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

const sessionKey = "checkout"

// Load returns the open checkout of the session, if any.
func Load(ctx context.Context, sm *scs.SessionManager) (Flow, bool) {
	f, ok := sm.Get(ctx, sessionKey).(Flow)
	return f, ok
}

func Save(ctx context.Context, sm *scs.SessionManager, f Flow) {
	sm.Put(ctx, sessionKey, f)
}

func Drop(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, sessionKey)
}
