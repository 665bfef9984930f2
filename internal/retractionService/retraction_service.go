package retraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/sethvargo/go-retry"
)

// RetractionService removes erroneous raises from the ledger and repairs
// the auction's highest-bid view. Administrative, invoked out-of-band.
type RetractionService struct {
	store      repository.AuctionStore
	maxRetries uint64
	backoff    time.Duration
}

// NewRetractionService creates a new RetractionService instance
func NewRetractionService(store repository.AuctionStore, maxRetries uint64, backoff time.Duration) *RetractionService {
	return &RetractionService{
		store:      store,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// RetractBid removes the earliest raise matching amount from a ledger entry.
// When the retracting bidder is the current leader the auction's highest
// bid/bidder are recomputed from the remaining ledger raises, promoting the
// runner-up when one exists. The ledger is the source of truth here: the
// view is rebuilt from it, never patched incrementally, and the whole
// repair commits as one atomic unit against the observed auction version.
func (s *RetractionService) RetractBid(ctx context.Context, entryID string, amount float64) (models.LedgerEntry, error) {
	if entryID == "" {
		return models.LedgerEntry{}, fmt.Errorf("service: %w - empty entry ID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.LedgerEntry{}, fmt.Errorf("service: %w - non-positive amount", auctionerrors.ErrInvalidBid)
	}

	var repaired models.LedgerEntry

	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewConstant(s.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		entry, err := s.store.GetLedgerEntryByID(entryID)
		if err != nil {
			return fmt.Errorf("service: failed to load ledger entry %s: %w", entryID, err)
		}
		auction, err := s.store.GetAuction(entry.AuctionID)
		if err != nil {
			return fmt.Errorf("service: failed to load auction %s: %w", entry.AuctionID, err)
		}
		entries, err := s.store.ListLedgerEntries(entry.AuctionID)
		if err != nil {
			return fmt.Errorf("service: failed to list ledger entries for auction %s: %w", entry.AuctionID, err)
		}

		if !hasRaise(entry, amount) {
			return fmt.Errorf("service: entry %s amount %.2f: %w", entryID, amount, auctionerrors.ErrRaiseNotFound)
		}

		now := time.Now().UTC()
		expired := auction.Status == models.StatusPast || now.After(auction.EndTime)

		rep := repository.Repair{
			EntryID:      entryID,
			RemoveAmount: amount,
			EntryStatus:  entry.Status,
		}
		if !expired {
			rep.EntryStatus = models.EntryActive
		}

		if auction.HighestBidder == entry.BidderID {
			s.planPromotion(&rep, entries, entryID, amount, expired)
		}

		committed, err := s.store.CommitRepair(auction.AuctionID, auction.Version, rep)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrVersionConflict) {
				return retry.RetryableError(err)
			}
			return fmt.Errorf("service: failed to commit repair on auction %s: %w", auction.AuctionID, err)
		}

		repaired = committed
		utils.Info("bid retracted", map[string]any{
			"entry_id":   entryID,
			"auction_id": auction.AuctionID,
			"amount":     amount,
			"promoted":   rep.PromoteEntryID,
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, auctionerrors.ErrVersionConflict) {
			return models.LedgerEntry{}, fmt.Errorf("service: retraction contention on entry %s: %w", entryID, auctionerrors.ErrTransient)
		}
		return models.LedgerEntry{}, err
	}

	return repaired, nil
}

// planPromotion fills in the auction-view part of the repair for a leader
// retraction: rank what remains of the ledger after the raise is removed
// and promote the top raise, or clear the view when nothing remains.
func (s *RetractionService) planPromotion(rep *repository.Repair, entries []models.LedgerEntry, entryID string, amount float64, expired bool) {
	remaining := bidding.RankRaises(withoutRaise(entries, entryID, amount))

	rep.TouchAuction = true
	rep.TotalBidsDelta = -1

	if len(remaining) == 0 {
		rep.NewHighestBid = nil
		rep.NewHighestBidder = ""
		return
	}

	top := remaining[0]
	next := top.Amount
	rep.NewHighestBid = &next
	rep.NewHighestBidder = top.BidderID
	rep.PromoteEntryID = top.EntryID
	if expired {
		rep.PromoteStatus = models.EntryWinner
	} else {
		rep.PromoteStatus = models.EntryActive
	}
}

// DeleteAuctions removes auctions administratively, cascading to their
// ledger entries and purging bidder-history backreferences. Each auction
// deletes atomically; the batch stops at the first failure.
func (s *RetractionService) DeleteAuctions(auctionIDs []string) error {
	if len(auctionIDs) == 0 {
		return fmt.Errorf("service: %w - no auction IDs", auctionerrors.ErrInvalidBid)
	}
	for _, id := range auctionIDs {
		if err := s.store.DeleteAuction(id); err != nil {
			return fmt.Errorf("service: failed to delete auction %s: %w", id, err)
		}
		utils.Info("auction deleted", map[string]any{"auction_id": id})
	}
	return nil
}

func hasRaise(entry models.LedgerEntry, amount float64) bool {
	for _, r := range entry.Raises {
		if r.Amount == amount {
			return true
		}
	}
	return false
}

// withoutRaise returns the entries with the earliest raise matching amount
// removed from the named entry.
func withoutRaise(entries []models.LedgerEntry, entryID string, amount float64) []models.LedgerEntry {
	out := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.EntryID != entryID {
			out = append(out, e)
			continue
		}
		trimmed := e
		trimmed.Raises = nil
		removed := false
		for _, r := range e.Raises {
			if !removed && r.Amount == amount {
				removed = true
				continue
			}
			trimmed.Raises = append(trimmed.Raises, r)
		}
		out = append(out, trimmed)
	}
	return out
}
