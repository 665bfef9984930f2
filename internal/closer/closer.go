package closer

import (
	"context"
	"time"

	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// Closer is the periodic sweep that transitions expired live auctions to
// past and settles their ledger entries. Each auction is finalized in its
// own atomic unit, so a failure mid-sweep never leaves a past auction with
// active entries; re-running against an already closed auction is a no-op
// because the scan only selects live auctions.
type Closer struct {
	store    repository.AuctionStore
	interval time.Duration
}

// NewCloser creates a new Closer instance
func NewCloser(store repository.AuctionStore, interval time.Duration) *Closer {
	return &Closer{
		store:    store,
		interval: interval,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (c *Closer) Run(ctx context.Context) {
	c.Sweep(time.Now().UTC())

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.Info("auction closer stopped", map[string]any{"reason": ctx.Err().Error()})
			return
		case now := <-ticker.C:
			c.Sweep(now.UTC())
		}
	}
}

// Sweep closes every live auction whose end time has passed. One auction's
// failure is logged and the sweep continues with the next. Returns the
// number of auctions actually closed.
func (c *Closer) Sweep(now time.Time) int {
	expired, err := c.store.ListExpiredLive(now)
	if err != nil {
		utils.Error("failed to scan for expired auctions", map[string]any{"error": err.Error()})
		return 0
	}
	if len(expired) == 0 {
		return 0
	}

	closed := 0
	for _, a := range expired {
		done, err := c.store.FinalizeAuction(a.AuctionID, now)
		if err != nil {
			utils.Error("failed to finalize auction", map[string]any{
				"auction_id": a.AuctionID,
				"error":      err.Error(),
			})
			continue
		}
		if !done {
			// already closed by a concurrent sweep
			continue
		}
		closed++
		utils.Info("auction closed", map[string]any{
			"auction_id":     a.AuctionID,
			"highest_bidder": a.HighestBidder,
			"total_bids":     a.TotalBids,
		})
	}

	utils.Info("auction sweep finished", map[string]any{
		"expired": len(expired),
		"closed":  closed,
	})
	return closed
}
