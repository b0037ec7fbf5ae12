package store

import (
	"context"
	"log"

	"github.com/Srujan0798/CareerMirror/internal/config"
)

// Open selects and opens the backend strategy. The choice is a pure
// function of configuration, evaluated exactly once at startup: remote
// when an endpoint and the feature flag are both present, local
// otherwise. Business logic never branches on the flag again: callers
// hold only the Backend interface.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	if cfg.RemoteSelected() {
		log.Printf("storage: using remote backend")
		return OpenRemote(ctx, cfg.DatabaseURL, cfg.SessionTTL)
	}
	log.Printf("storage: using local backend at %s", cfg.LocalStorePath)
	return OpenLocal(cfg.LocalStorePath, cfg.SessionTTL)
}
