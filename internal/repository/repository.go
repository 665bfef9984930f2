package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/utils"
)

// Repair describes the full outcome of a bid retraction, computed by the
// retraction service from a versioned snapshot and applied atomically by
// the store. The auction's materialized view is only touched when the
// retracted bid belonged to the current leader.
type Repair struct {
	EntryID      string            // entry losing the raise
	RemoveAmount float64           // earliest raise with this amount is removed
	EntryStatus  model.EntryStatus // status of the retracting entry after repair

	TouchAuction     bool // when false, nothing below is applied
	NewHighestBid    *float64
	NewHighestBidder string
	TotalBidsDelta   int

	PromoteEntryID string // runner-up entry promoted to leader, "" when none
	PromoteStatus  model.EntryStatus
}

// AuctionStore defines storage for auctions, bidders and the bid ledger.
// Commit operations take the auction version observed by the caller and
// fail with ErrVersionConflict when another writer committed in between,
// which makes every read-modify-write cycle on one auction linearizable.
type AuctionStore interface {
	GetAuction(auctionID string) (model.Auction, error)
	GetBidder(bidderID string) (model.Bidder, error)
	GetLedgerEntry(auctionID, bidderID string) (model.LedgerEntry, error)
	GetLedgerEntryByID(entryID string) (model.LedgerEntry, error)
	ListLedgerEntries(auctionID string) ([]model.LedgerEntry, error)
	CountActiveEntries(bidderID string) (int, error)
	ListAuctionsByBidder(bidderID string) ([]model.Auction, error)

	CommitBid(auctionID string, version uint64, bidderID string, raise model.Raise) (model.LedgerEntry, error)
	CommitRepair(auctionID string, version uint64, repair Repair) (model.LedgerEntry, error)

	ListExpiredLive(now time.Time) ([]model.Auction, error)
	FinalizeAuction(auctionID string, now time.Time) (bool, error)

	DeleteAuction(auctionID string) error
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu        sync.RWMutex
	auctions  map[string]*model.Auction     // key: auctionID
	bidders   map[string]*model.Bidder      // key: bidderID
	entries   map[string]*model.LedgerEntry // key: entryID
	byAuction map[string][]string           // key: auctionID -> entry IDs
	byPair    map[string]string             // key: auctionID+"/"+bidderID -> entryID
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions:  make(map[string]*model.Auction),
		bidders:   make(map[string]*model.Bidder),
		entries:   make(map[string]*model.LedgerEntry),
		byAuction: make(map[string][]string),
		byPair:    make(map[string]string),
	}
}

func pairKey(auctionID, bidderID string) string {
	return auctionID + "/" + bidderID
}

// AddAuction seeds an auction. Listings are created by the out-of-scope
// listing workflow; this is the entry point it and the tests use.
func (s *MemoryStore) AddAuction(a model.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.Status == "" {
		a.Status = model.StatusDraft
	}
	s.auctions[a.AuctionID] = &a
}

// AddBidder seeds a bidder profile.
func (s *MemoryStore) AddBidder(b model.Bidder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bidders[b.BidderID] = &b
}

// GetAuction returns a snapshot of one auction, including its version.
func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return copyAuction(a), nil
}

// GetBidder returns a snapshot of one bidder profile.
func (s *MemoryStore) GetBidder(bidderID string) (model.Bidder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bidders[bidderID]
	if !ok {
		return model.Bidder{}, fmt.Errorf("get bidder %s: %w", bidderID, auctionerrors.ErrBidderNotFound)
	}
	return copyBidder(b), nil
}

// GetLedgerEntry returns the single entry a bidder holds on an auction.
func (s *MemoryStore) GetLedgerEntry(auctionID, bidderID string) (model.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entryID, ok := s.byPair[pairKey(auctionID, bidderID)]
	if !ok {
		return model.LedgerEntry{}, fmt.Errorf("get ledger entry for auction %s bidder %s: %w",
			auctionID, bidderID, auctionerrors.ErrEntryNotFound)
	}
	return copyEntry(s.entries[entryID]), nil
}

// GetLedgerEntryByID returns one ledger entry by its identifier.
func (s *MemoryStore) GetLedgerEntryByID(entryID string) (model.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[entryID]
	if !ok {
		return model.LedgerEntry{}, fmt.Errorf("get ledger entry %s: %w", entryID, auctionerrors.ErrEntryNotFound)
	}
	return copyEntry(e), nil
}

// ListLedgerEntries returns snapshots of all entries for an auction.
func (s *MemoryStore) ListLedgerEntries(auctionID string) ([]model.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("list ledger entries for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	ids := s.byAuction[auctionID]
	out := make([]model.LedgerEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyEntry(s.entries[id]))
	}
	return out, nil
}

// CountActiveEntries returns the number of active ledger entries a bidder
// holds across all auctions. This is the derived concurrency record; it is
// never persisted or locked on its own.
func (s *MemoryStore) CountActiveEntries(bidderID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.bidders[bidderID]; !ok {
		return 0, fmt.Errorf("count active entries for bidder %s: %w", bidderID, auctionerrors.ErrBidderNotFound)
	}

	count := 0
	for _, e := range s.entries {
		if e.BidderID == bidderID && e.Status == model.EntryActive {
			count++
		}
	}
	return count, nil
}

// ListAuctionsByBidder returns all auctions a bidder holds ledger entries in.
func (s *MemoryStore) ListAuctionsByBidder(bidderID string) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bidders[bidderID]
	if !ok {
		return nil, fmt.Errorf("list auctions for bidder %s: %w", bidderID, auctionerrors.ErrBidderNotFound)
	}

	out := make([]model.Auction, 0, len(b.BiddingHistory))
	for _, entryID := range b.BiddingHistory {
		e, ok := s.entries[entryID]
		if !ok {
			continue
		}
		if a, ok := s.auctions[e.AuctionID]; ok {
			out = append(out, copyAuction(a))
		}
	}
	return out, nil
}

// CommitBid atomically appends a raise to the bidder's ledger entry
// (creating it on the first bid), updates the auction's highest bid/bidder
// and total, and bumps the version. Validation happens in the bidding
// service against the snapshot whose version is passed here.
func (s *MemoryStore) CommitBid(auctionID string, version uint64, bidderID string, raise model.Raise) (model.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.LedgerEntry{}, fmt.Errorf("commit bid on auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Version != version {
		return model.LedgerEntry{}, fmt.Errorf("commit bid on auction %s: %w", auctionID, auctionerrors.ErrVersionConflict)
	}
	b, ok := s.bidders[bidderID]
	if !ok {
		return model.LedgerEntry{}, fmt.Errorf("commit bid by bidder %s: %w", bidderID, auctionerrors.ErrBidderNotFound)
	}

	key := pairKey(auctionID, bidderID)
	entryID, exists := s.byPair[key]
	var entry *model.LedgerEntry
	if exists {
		entry = s.entries[entryID]
	} else {
		entry = &model.LedgerEntry{
			EntryID:   utils.GenerateID(),
			AuctionID: auctionID,
			BidderID:  bidderID,
		}
		s.entries[entry.EntryID] = entry
		s.byPair[key] = entry.EntryID
		s.byAuction[auctionID] = append(s.byAuction[auctionID], entry.EntryID)
		b.BiddingHistory = append(b.BiddingHistory, entry.EntryID)
	}

	entry.Raises = append(entry.Raises, raise)
	entry.Status = model.EntryActive

	amount := raise.Amount
	a.HighestBid = &amount
	a.HighestBidder = bidderID
	a.TotalBids++
	a.Version++

	return copyEntry(entry), nil
}

// CommitRepair atomically applies a retraction outcome. All-or-nothing:
// any failed check leaves the store untouched.
func (s *MemoryStore) CommitRepair(auctionID string, version uint64, repair Repair) (model.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.LedgerEntry{}, fmt.Errorf("commit repair on auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Version != version {
		return model.LedgerEntry{}, fmt.Errorf("commit repair on auction %s: %w", auctionID, auctionerrors.ErrVersionConflict)
	}
	entry, ok := s.entries[repair.EntryID]
	if !ok || entry.AuctionID != auctionID {
		return model.LedgerEntry{}, fmt.Errorf("commit repair: entry %s: %w", repair.EntryID, auctionerrors.ErrEntryNotFound)
	}

	idx := -1
	for i, r := range entry.Raises {
		if r.Amount == repair.RemoveAmount {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.LedgerEntry{}, fmt.Errorf("commit repair: entry %s amount %.2f: %w",
			repair.EntryID, repair.RemoveAmount, auctionerrors.ErrRaiseNotFound)
	}

	var promoted *model.LedgerEntry
	if repair.PromoteEntryID != "" {
		promoted, ok = s.entries[repair.PromoteEntryID]
		if !ok || promoted.AuctionID != auctionID {
			return model.LedgerEntry{}, fmt.Errorf("commit repair: promote entry %s: %w",
				repair.PromoteEntryID, auctionerrors.ErrEntryNotFound)
		}
	}

	// checks done, apply
	entry.Raises = append(entry.Raises[:idx], entry.Raises[idx+1:]...)
	entry.Status = repair.EntryStatus

	if promoted != nil {
		promoted.Status = repair.PromoteStatus
	}

	if repair.TouchAuction {
		if repair.NewHighestBid != nil {
			amount := *repair.NewHighestBid
			a.HighestBid = &amount
		} else {
			a.HighestBid = nil
		}
		a.HighestBidder = repair.NewHighestBidder
		a.TotalBids += repair.TotalBidsDelta
	}
	a.Version++

	return copyEntry(entry), nil
}

// ListExpiredLive returns snapshots of live auctions whose end time has passed.
func (s *MemoryStore) ListExpiredLive(now time.Time) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Auction
	for _, a := range s.auctions {
		if a.Status == model.StatusLive && !a.EndTime.After(now) {
			out = append(out, copyAuction(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AuctionID < out[j].AuctionID })
	return out, nil
}

// FinalizeAuction closes one expired live auction and settles its ledger:
// the leader's entry becomes winner, every other active entry becomes
// completed. Returns false without writing when the auction is no longer
// live or has not expired, which makes repeated sweeps no-ops.
func (s *MemoryStore) FinalizeAuction(auctionID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return false, fmt.Errorf("finalize auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if a.Status != model.StatusLive || a.EndTime.After(now) {
		return false, nil
	}

	a.Status = model.StatusPast
	for _, entryID := range s.byAuction[auctionID] {
		e := s.entries[entryID]
		if e.Status != model.EntryActive {
			continue
		}
		if a.HighestBidder != "" && e.BidderID == a.HighestBidder {
			e.Status = model.EntryWinner
		} else {
			e.Status = model.EntryCompleted
		}
	}
	a.Version++

	return true, nil
}

// DeleteAuction removes an auction, cascades to its ledger entries and
// purges entry backreferences from bidder histories.
func (s *MemoryStore) DeleteAuction(auctionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[auctionID]; !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	for _, entryID := range s.byAuction[auctionID] {
		e := s.entries[entryID]
		if b, ok := s.bidders[e.BidderID]; ok {
			b.BiddingHistory = removeString(b.BiddingHistory, entryID)
		}
		delete(s.byPair, pairKey(auctionID, e.BidderID))
		delete(s.entries, entryID)
	}
	delete(s.byAuction, auctionID)
	delete(s.auctions, auctionID)

	return nil
}

func removeString(in []string, target string) []string {
	out := in[:0]
	for _, v := range in {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

func copyAuction(a *model.Auction) model.Auction {
	out := *a
	if a.HighestBid != nil {
		amount := *a.HighestBid
		out.HighestBid = &amount
	}
	return out
}

func copyBidder(b *model.Bidder) model.Bidder {
	out := *b
	out.BiddingHistory = append([]string(nil), b.BiddingHistory...)
	return out
}

func copyEntry(e *model.LedgerEntry) model.LedgerEntry {
	out := *e
	out.Raises = append([]model.Raise(nil), e.Raises...)
	return out
}
