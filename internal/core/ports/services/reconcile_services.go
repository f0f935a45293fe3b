package services

import (
	"context"
	"time"

	"github.com/civicgift/donate-backend/internal/dto"
)

// ReconcileSvcFacade is the batch job that sweeps the processor for
// activity the ledger has not recorded yet.
type ReconcileSvcFacade interface {
	// Run sweeps the configured window back from now, applies every
	// reconcilable difference, routes the rest to priority reports, and
	// returns a summary of what changed. Running twice over the same window
	// writes nothing the second time.
	Run(ctx context.Context, now time.Time) (*dto.ReconcileSummary, error)
}
