package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/stretchr/testify/require"
)

// Helper to create a live auction
func newLiveAuction(auctionID string, price, minDiff float64, now time.Time) model.Auction {
	return model.Auction{
		AuctionID:            auctionID,
		Title:                fmt.Sprintf("%s title", auctionID),
		Price:                price,
		MinimumBidDifference: minDiff,
		StartTime:            now.Add(-time.Hour),
		EndTime:              now.Add(time.Hour),
		Status:               model.StatusLive,
	}
}

// Helper to create a bidder with a complete profile
func newBidder(bidderID string) model.Bidder {
	return model.Bidder{
		BidderID:        bidderID,
		Username:        bidderID,
		Email:           bidderID + "@example.com",
		ProfileComplete: true,
	}
}

func seedStore(t *testing.T, auctions []model.Auction, bidders []model.Bidder) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	for _, a := range auctions {
		store.AddAuction(a)
	}
	for _, b := range bidders {
		store.AddBidder(b)
	}
	return store
}

// mustBid commits a raise against the current auction version
func mustBid(t *testing.T, store *MemoryStore, auctionID, bidderID string, amount float64, at time.Time) model.LedgerEntry {
	t.Helper()
	a, err := store.GetAuction(auctionID)
	require.NoError(t, err)
	entry, err := store.CommitBid(auctionID, a.Version, bidderID, model.Raise{Amount: amount, Time: at})
	require.NoError(t, err)
	return entry
}

// Test CommitBid
func TestMemoryStore_CommitBid(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("first_bid_creates_entry_and_updates_view", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t,
			[]model.Auction{newLiveAuction("auction1", 100, 10, now)},
			[]model.Bidder{newBidder("bidder1")},
		)

		entry := mustBid(t, store, "auction1", "bidder1", 150, now)
		require.NotEmpty(t, entry.EntryID)
		require.Equal(t, model.EntryActive, entry.Status)
		require.Len(t, entry.Raises, 1)

		a, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.NotNil(t, a.HighestBid)
		require.Equal(t, 150.0, *a.HighestBid)
		require.Equal(t, "bidder1", a.HighestBidder)
		require.Equal(t, 1, a.TotalBids)
		require.Equal(t, uint64(1), a.Version)

		b, err := store.GetBidder("bidder1")
		require.NoError(t, err)
		require.Equal(t, []string{entry.EntryID}, b.BiddingHistory)
	})

	t.Run("raise_appends_to_existing_entry", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t,
			[]model.Auction{newLiveAuction("auction1", 100, 10, now)},
			[]model.Bidder{newBidder("bidder1")},
		)

		first := mustBid(t, store, "auction1", "bidder1", 150, now)
		second := mustBid(t, store, "auction1", "bidder1", 200, now.Add(time.Second))

		require.Equal(t, first.EntryID, second.EntryID, "one ledger entry per (auction, bidder)")
		require.Len(t, second.Raises, 2)

		standing, ok := second.StandingBid()
		require.True(t, ok)
		require.Equal(t, 200.0, standing.Amount)

		a, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, 2, a.TotalBids)

		b, err := store.GetBidder("bidder1")
		require.NoError(t, err)
		require.Len(t, b.BiddingHistory, 1, "raises must not duplicate history backrefs")
	})

	t.Run("stale_version_conflicts", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t,
			[]model.Auction{newLiveAuction("auction1", 100, 10, now)},
			[]model.Bidder{newBidder("bidder1"), newBidder("bidder2")},
		)

		a, err := store.GetAuction("auction1")
		require.NoError(t, err)

		_, err = store.CommitBid("auction1", a.Version, "bidder1", model.Raise{Amount: 150, Time: now})
		require.NoError(t, err)

		// second writer still holds the old snapshot
		_, err = store.CommitBid("auction1", a.Version, "bidder2", model.Raise{Amount: 160, Time: now})
		require.ErrorIs(t, err, auctionerrors.ErrVersionConflict)

		after, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, 150.0, *after.HighestBid)
		require.Equal(t, 1, after.TotalBids)
	})

	t.Run("unknown_auction_or_bidder", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t,
			[]model.Auction{newLiveAuction("auction1", 100, 10, now)},
			[]model.Bidder{newBidder("bidder1")},
		)

		_, err := store.CommitBid("auctionX", 0, "bidder1", model.Raise{Amount: 150, Time: now})
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)

		_, err = store.CommitBid("auction1", 0, "bidderX", model.Raise{Amount: 150, Time: now})
		require.ErrorIs(t, err, auctionerrors.ErrBidderNotFound)
	})

	t.Run("concurrent_bids_serialize", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t, []model.Auction{newLiveAuction("auction1", 0, 0, now)}, nil)

		concurrentCount := 50
		for i := 0; i < concurrentCount; i++ {
			store.AddBidder(newBidder(fmt.Sprintf("bidder-%d", i)))
		}

		var wg sync.WaitGroup
		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				amount := float64(100 + i)
				// optimistic retry loop, the same shape the services use
				for {
					a, err := store.GetAuction("auction1")
					require.NoError(t, err)
					_, err = store.CommitBid("auction1", a.Version, fmt.Sprintf("bidder-%d", i), model.Raise{Amount: amount, Time: time.Now().UTC()})
					if err == nil {
						return
					}
					require.ErrorIs(t, err, auctionerrors.ErrVersionConflict)
				}
			}()
		}
		wg.Wait()

		a, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, concurrentCount, a.TotalBids)
		require.Equal(t, uint64(concurrentCount), a.Version)

		entries, err := store.ListLedgerEntries("auction1")
		require.NoError(t, err)
		require.Len(t, entries, concurrentCount)

		// the view reflects the last serialized commit: the leader's entry
		// must hold a raise matching the recorded highest bid
		require.NotNil(t, a.HighestBid)
		leader, err := store.GetLedgerEntry("auction1", a.HighestBidder)
		require.NoError(t, err)
		standing, ok := leader.StandingBid()
		require.True(t, ok)
		require.Equal(t, *a.HighestBid, standing.Amount)
	})
}

// Test CommitRepair
func TestMemoryStore_CommitRepair(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	// seed one auction with three bidders: alice 100->120, bob 110, carol 90
	setup := func(t *testing.T) (*MemoryStore, map[string]model.LedgerEntry) {
		store := seedStore(t,
			[]model.Auction{newLiveAuction("auction1", 50, 5, now)},
			[]model.Bidder{newBidder("alice"), newBidder("bob"), newBidder("carol")},
		)
		entries := map[string]model.LedgerEntry{}
		entries["alice"] = mustBid(t, store, "auction1", "alice", 100, now)
		entries["bob"] = mustBid(t, store, "auction1", "bob", 110, now.Add(time.Second))
		entries["alice"] = mustBid(t, store, "auction1", "alice", 120, now.Add(2*time.Second))
		entries["carol"] = mustBid(t, store, "auction1", "carol", 90, now.Add(3*time.Second))
		return store, entries
	}

	t.Run("removal_without_auction_mutation", func(t *testing.T) {
		t.Parallel()

		store, entries := setup(t)
		a, err := store.GetAuction("auction1")
		require.NoError(t, err)

		repaired, err := store.CommitRepair("auction1", a.Version, Repair{
			EntryID:      entries["bob"].EntryID,
			RemoveAmount: 110,
			EntryStatus:  model.EntryActive,
		})
		require.NoError(t, err)
		require.Empty(t, repaired.Raises)
		require.Equal(t, model.EntryActive, repaired.Status)

		after, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, 90.0, *after.HighestBid, "view untouched when TouchAuction is false")
		require.Equal(t, 4, after.TotalBids)
		require.Equal(t, a.Version+1, after.Version, "ledger change still bumps the version")
	})

	t.Run("promotion_updates_view_and_statuses", func(t *testing.T) {
		t.Parallel()

		store, entries := setup(t)
		a, err := store.GetAuction("auction1")
		require.NoError(t, err)

		next := 120.0
		_, err = store.CommitRepair("auction1", a.Version, Repair{
			EntryID:          entries["carol"].EntryID,
			RemoveAmount:     90,
			EntryStatus:      model.EntryActive,
			TouchAuction:     true,
			NewHighestBid:    &next,
			NewHighestBidder: "alice",
			TotalBidsDelta:   -1,
			PromoteEntryID:   entries["alice"].EntryID,
			PromoteStatus:    model.EntryActive,
		})
		require.NoError(t, err)

		after, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, 120.0, *after.HighestBid)
		require.Equal(t, "alice", after.HighestBidder)
		require.Equal(t, 3, after.TotalBids)
	})

	t.Run("clearing_the_view", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t,
			[]model.Auction{newLiveAuction("auction1", 50, 5, now)},
			[]model.Bidder{newBidder("alice")},
		)
		entry := mustBid(t, store, "auction1", "alice", 100, now)

		a, err := store.GetAuction("auction1")
		require.NoError(t, err)

		_, err = store.CommitRepair("auction1", a.Version, Repair{
			EntryID:        entry.EntryID,
			RemoveAmount:   100,
			EntryStatus:    model.EntryActive,
			TouchAuction:   true,
			NewHighestBid:  nil,
			TotalBidsDelta: -1,
		})
		require.NoError(t, err)

		after, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Nil(t, after.HighestBid)
		require.Empty(t, after.HighestBidder)
		require.Equal(t, 0, after.TotalBids)
	})

	t.Run("missing_raise_leaves_state_untouched", func(t *testing.T) {
		t.Parallel()

		store, entries := setup(t)
		a, err := store.GetAuction("auction1")
		require.NoError(t, err)

		_, err = store.CommitRepair("auction1", a.Version, Repair{
			EntryID:      entries["bob"].EntryID,
			RemoveAmount: 999,
			EntryStatus:  model.EntryActive,
		})
		require.ErrorIs(t, err, auctionerrors.ErrRaiseNotFound)

		after, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, a.Version, after.Version, "failed repair must not write")

		bob, err := store.GetLedgerEntryByID(entries["bob"].EntryID)
		require.NoError(t, err)
		require.Len(t, bob.Raises, 1)
	})

	t.Run("stale_version_conflicts", func(t *testing.T) {
		t.Parallel()

		store, entries := setup(t)
		a, err := store.GetAuction("auction1")
		require.NoError(t, err)

		_, err = store.CommitRepair("auction1", a.Version+5, Repair{
			EntryID:      entries["bob"].EntryID,
			RemoveAmount: 110,
			EntryStatus:  model.EntryActive,
		})
		require.ErrorIs(t, err, auctionerrors.ErrVersionConflict)
	})
}

// Test FinalizeAuction
func TestMemoryStore_FinalizeAuction(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("settles_winner_and_completed", func(t *testing.T) {
		t.Parallel()

		auction := newLiveAuction("auction1", 50, 5, now)
		auction.EndTime = now.Add(-time.Minute)
		store := seedStore(t, []model.Auction{auction},
			[]model.Bidder{newBidder("alice"), newBidder("bob")},
		)
		aliceEntry := mustBid(t, store, "auction1", "alice", 100, now.Add(-2*time.Hour))
		bobEntry := mustBid(t, store, "auction1", "bob", 110, now.Add(-time.Hour))

		closed, err := store.FinalizeAuction("auction1", now)
		require.NoError(t, err)
		require.True(t, closed)

		a, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, model.StatusPast, a.Status)

		bob, err := store.GetLedgerEntryByID(bobEntry.EntryID)
		require.NoError(t, err)
		require.Equal(t, model.EntryWinner, bob.Status)

		alice, err := store.GetLedgerEntryByID(aliceEntry.EntryID)
		require.NoError(t, err)
		require.Equal(t, model.EntryCompleted, alice.Status)
	})

	t.Run("no_leader_completes_all", func(t *testing.T) {
		t.Parallel()

		auction := newLiveAuction("auction1", 50, 5, now)
		auction.EndTime = now.Add(-time.Minute)
		store := seedStore(t, []model.Auction{auction}, nil)

		closed, err := store.FinalizeAuction("auction1", now)
		require.NoError(t, err)
		require.True(t, closed)

		a, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, model.StatusPast, a.Status)
	})

	t.Run("second_run_is_noop", func(t *testing.T) {
		t.Parallel()

		auction := newLiveAuction("auction1", 50, 5, now)
		auction.EndTime = now.Add(-time.Minute)
		store := seedStore(t, []model.Auction{auction}, []model.Bidder{newBidder("alice")})
		mustBid(t, store, "auction1", "alice", 100, now.Add(-2*time.Hour))

		closed, err := store.FinalizeAuction("auction1", now)
		require.NoError(t, err)
		require.True(t, closed)

		before, err := store.GetAuction("auction1")
		require.NoError(t, err)

		closed, err = store.FinalizeAuction("auction1", now)
		require.NoError(t, err)
		require.False(t, closed)

		after, err := store.GetAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, before.Version, after.Version, "no writes on repeat")
	})

	t.Run("live_auction_not_yet_expired", func(t *testing.T) {
		t.Parallel()

		store := seedStore(t, []model.Auction{newLiveAuction("auction1", 50, 5, now)}, nil)

		closed, err := store.FinalizeAuction("auction1", now)
		require.NoError(t, err)
		require.False(t, closed)
	})

	t.Run("unknown_auction", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		_, err := store.FinalizeAuction("auctionX", now)
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})
}

// Test ListExpiredLive
func TestMemoryStore_ListExpiredLive(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	expired := newLiveAuction("auction1", 50, 5, now)
	expired.EndTime = now.Add(-time.Minute)
	open := newLiveAuction("auction2", 50, 5, now)
	past := newLiveAuction("auction3", 50, 5, now)
	past.EndTime = now.Add(-time.Minute)
	past.Status = model.StatusPast
	draft := newLiveAuction("auction4", 50, 5, now)
	draft.Status = model.StatusDraft

	store := seedStore(t, []model.Auction{expired, open, past, draft}, nil)

	candidates, err := store.ListExpiredLive(now)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "auction1", candidates[0].AuctionID)
}

// Test DeleteAuction
func TestMemoryStore_DeleteAuction(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	store := seedStore(t,
		[]model.Auction{newLiveAuction("auction1", 50, 5, now), newLiveAuction("auction2", 50, 5, now)},
		[]model.Bidder{newBidder("alice"), newBidder("bob")},
	)
	aliceA1 := mustBid(t, store, "auction1", "alice", 100, now)
	aliceA2 := mustBid(t, store, "auction2", "alice", 200, now)
	bobA1 := mustBid(t, store, "auction1", "bob", 110, now)

	require.NoError(t, store.DeleteAuction("auction1"))

	_, err := store.GetAuction("auction1")
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)

	_, err = store.GetLedgerEntryByID(aliceA1.EntryID)
	require.ErrorIs(t, err, auctionerrors.ErrEntryNotFound)
	_, err = store.GetLedgerEntryByID(bobA1.EntryID)
	require.ErrorIs(t, err, auctionerrors.ErrEntryNotFound)
	_, err = store.GetLedgerEntry("auction1", "alice")
	require.ErrorIs(t, err, auctionerrors.ErrEntryNotFound)

	alice, err := store.GetBidder("alice")
	require.NoError(t, err)
	require.Equal(t, []string{aliceA2.EntryID}, alice.BiddingHistory, "backrefs purged, other auctions kept")

	bob, err := store.GetBidder("bob")
	require.NoError(t, err)
	require.Empty(t, bob.BiddingHistory)

	// other auction untouched
	_, err = store.GetLedgerEntryByID(aliceA2.EntryID)
	require.NoError(t, err)

	require.ErrorIs(t, store.DeleteAuction("auction1"), auctionerrors.ErrAuctionNotFound)
}

// Test CountActiveEntries
func TestMemoryStore_CountActiveEntries(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	store := seedStore(t,
		[]model.Auction{
			newLiveAuction("auction1", 50, 5, now),
			newLiveAuction("auction2", 50, 5, now),
			newLiveAuction("auction3", 50, 5, now),
		},
		[]model.Bidder{newBidder("alice")},
	)
	mustBid(t, store, "auction1", "alice", 100, now)
	mustBid(t, store, "auction2", "alice", 100, now)
	entry := mustBid(t, store, "auction3", "alice", 100, now)

	count, err := store.CountActiveEntries("alice")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	// an entry closed by the sweep no longer counts
	a3, err := store.GetAuction("auction3")
	require.NoError(t, err)
	_, err = store.CommitRepair("auction3", a3.Version, Repair{
		EntryID:        entry.EntryID,
		RemoveAmount:   100,
		EntryStatus:    model.EntryCompleted,
		TouchAuction:   true,
		TotalBidsDelta: -1,
	})
	require.NoError(t, err)

	count, err = store.CountActiveEntries("alice")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, err = store.CountActiveEntries("bidderX")
	require.ErrorIs(t, err, auctionerrors.ErrBidderNotFound)
}

// Test ListAuctionsByBidder
func TestMemoryStore_ListAuctionsByBidder(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	store := seedStore(t,
		[]model.Auction{newLiveAuction("auction1", 50, 5, now), newLiveAuction("auction2", 50, 5, now)},
		[]model.Bidder{newBidder("alice"), newBidder("bob")},
	)
	mustBid(t, store, "auction1", "alice", 100, now)
	mustBid(t, store, "auction2", "alice", 200, now)
	mustBid(t, store, "auction2", "alice", 300, now.Add(time.Second))

	auctions, err := store.ListAuctionsByBidder("alice")
	require.NoError(t, err)
	require.Len(t, auctions, 2, "repeat raises must not duplicate auctions")

	auctions, err = store.ListAuctionsByBidder("bob")
	require.NoError(t, err)
	require.Empty(t, auctions)

	_, err = store.ListAuctionsByBidder("bidderX")
	require.ErrorIs(t, err, auctionerrors.ErrBidderNotFound)
}
