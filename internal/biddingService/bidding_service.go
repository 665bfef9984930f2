package bidding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/internal/notifier"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/sethvargo/go-retry"
)

// MaxActiveAuctions caps the number of auctions one bidder may hold an
// active ledger entry in at the same time. Raising an existing entry on
// an auction the bidder already leads is always allowed.
const MaxActiveAuctions = 2

// BiddingService validates and atomically applies bids against auctions
type BiddingService struct {
	store      repository.AuctionStore
	sink       notifier.Notifier
	maxRetries uint64
	backoff    time.Duration
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(store repository.AuctionStore, sink notifier.Notifier, maxRetries uint64, backoff time.Duration) *BiddingService {
	return &BiddingService{
		store:      store,
		sink:       sink,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// PlaceBid validates and records a bidder's raise on an auction. The whole
// read-validate-commit cycle runs against one auction version; a concurrent
// writer invalidates the snapshot and the cycle is retried a bounded number
// of times before the contention is surfaced as a transient error.
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.LedgerEntry, error) {
	if auctionID == "" || bidderID == "" {
		return models.LedgerEntry{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.LedgerEntry{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	var (
		entry   models.LedgerEntry
		auction models.Auction
	)

	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewConstant(s.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		a, err := s.store.GetAuction(auctionID)
		if err != nil {
			return fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
		}
		bidder, err := s.store.GetBidder(bidderID)
		if err != nil {
			return fmt.Errorf("service: failed to load bidder %s: %w", bidderID, err)
		}

		now := time.Now().UTC()
		if err := s.validateBid(a, bidder, now, amount); err != nil {
			return err
		}

		committed, err := s.store.CommitBid(auctionID, a.Version, bidderID, models.Raise{Amount: amount, Time: now})
		if err != nil {
			if errors.Is(err, auctionerrors.ErrVersionConflict) {
				// another writer committed first, re-validate against the new state
				return retry.RetryableError(err)
			}
			return fmt.Errorf("service: failed to commit bid on auction %s: %w", auctionID, err)
		}

		entry = committed
		auction = a
		return nil
	})
	if err != nil {
		if errors.Is(err, auctionerrors.ErrVersionConflict) {
			return models.LedgerEntry{}, fmt.Errorf("service: bid contention on auction %s: %w", auctionID, auctionerrors.ErrTransient)
		}
		return models.LedgerEntry{}, err
	}

	// The bid is committed; broadcasting is best effort and never rolls it back.
	s.notifyAccepted(auction, amount)

	return entry, nil
}

// validateBid enforces the bid preconditions in order, each with its own
// rejection reason.
func (s *BiddingService) validateBid(a models.Auction, bidder models.Bidder, now time.Time, amount float64) error {
	if !bidder.ProfileComplete {
		return fmt.Errorf("service: bidder %s: %w", bidder.BidderID, auctionerrors.ErrProfileIncomplete)
	}

	switch {
	case a.Status == models.StatusPast || now.After(a.EndTime):
		return fmt.Errorf("service: auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionEnded)
	case a.Status == models.StatusDraft || now.Before(a.StartTime):
		return fmt.Errorf("service: auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionNotStarted)
	case a.Status != models.StatusLive:
		return fmt.Errorf("service: auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionNotLive)
	}

	holdsThisAuction := false
	existing, err := s.store.GetLedgerEntry(a.AuctionID, bidder.BidderID)
	if err == nil {
		holdsThisAuction = existing.Status == models.EntryActive
	} else if !errors.Is(err, auctionerrors.ErrEntryNotFound) {
		return fmt.Errorf("service: failed to check ledger entry: %w", err)
	}

	if !holdsThisAuction {
		active, err := s.store.CountActiveEntries(bidder.BidderID)
		if err != nil {
			return fmt.Errorf("service: failed to count active entries: %w", err)
		}
		if active >= MaxActiveAuctions {
			return fmt.Errorf("service: bidder %s has %d active auctions: %w",
				bidder.BidderID, active, auctionerrors.ErrAuctionCap)
		}
	}

	floor := a.Price
	if a.HighestBid != nil {
		floor = *a.HighestBid
	}
	minRequired := floor + a.MinimumBidDifference
	if amount <= minRequired {
		return fmt.Errorf("service: %w - amount must exceed %.2f", auctionerrors.ErrBidTooLow, minRequired)
	}

	return nil
}

func (s *BiddingService) notifyAccepted(a models.Auction, amount float64) {
	if err := s.sink.BroadcastHighestBid(a.AuctionID, amount); err != nil {
		utils.Error("failed to broadcast highest bid", map[string]any{
			"auction_id": a.AuctionID,
			"amount":     amount,
			"error":      err.Error(),
		})
	}
	notice := notifier.RoomNotice{
		Title:     a.Title,
		Amount:    amount,
		AuctionID: a.AuctionID,
		Image:     a.Image,
	}
	if err := s.sink.NotifyRoom(a.AuctionID, notice); err != nil {
		utils.Error("failed to notify auction room", map[string]any{
			"auction_id": a.AuctionID,
			"amount":     amount,
			"error":      err.Error(),
		})
	}
}

// RankedHistory returns every raise on an auction flattened across ledger
// entries and ordered highest first, ties broken by earlier bid time.
func (s *BiddingService) RankedHistory(auctionID string) ([]models.RankedRaise, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	entries, err := s.store.ListLedgerEntries(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list ledger entries for auction %s: %w", auctionID, err)
	}

	return RankRaises(entries), nil
}

// WinningRaise returns the current leading raise of an auction.
func (s *BiddingService) WinningRaise(auctionID string) (models.RankedRaise, error) {
	ranked, err := s.RankedHistory(auctionID)
	if err != nil {
		return models.RankedRaise{}, err
	}
	if len(ranked) == 0 {
		return models.RankedRaise{}, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return ranked[0], nil
}

// AuctionsForBidder returns all auctions a bidder holds ledger entries in
func (s *BiddingService) AuctionsForBidder(bidderID string) ([]models.Auction, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("service: %w - empty bidder ID", auctionerrors.ErrInvalidBid)
	}

	auctions, err := s.store.ListAuctionsByBidder(bidderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions for bidder %s: %w", bidderID, err)
	}

	return auctions, nil
}

// RankRaises flattens ledger entries into a single ranking ordered by
// amount descending, ties broken by earliest bid time. The retraction
// engine uses the same ordering when promoting a runner-up.
func RankRaises(entries []models.LedgerEntry) []models.RankedRaise {
	var ranked []models.RankedRaise
	for _, e := range entries {
		for _, r := range e.Raises {
			ranked = append(ranked, models.RankedRaise{
				EntryID:  e.EntryID,
				BidderID: e.BidderID,
				Amount:   r.Amount,
				Time:     r.Time,
				Status:   e.Status,
			})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Time.Before(ranked[j].Time)
	})
	return ranked
}
