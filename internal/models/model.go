package models

import "time"

// AuctionStatus is the lifecycle state of an auction listing.
type AuctionStatus string

const (
	StatusDraft AuctionStatus = "draft"
	StatusLive  AuctionStatus = "live"
	StatusPast  AuctionStatus = "past"
)

// EntryStatus is the derived state of a bidder's ledger entry.
type EntryStatus string

const (
	EntryActive    EntryStatus = "active"
	EntryWinner    EntryStatus = "winner"
	EntryCompleted EntryStatus = "completed"
)

// Auction represents a time-boxed vehicle listing accepting bids.
// HighestBid/HighestBidder are a materialized view over the auction's
// ledger entries; the ledger is the source of truth.
type Auction struct {
	AuctionID            string        `json:"auction_id"`
	Title                string        `json:"title"`
	Description          string        `json:"description"`
	Image                string        `json:"image"`
	Price                float64       `json:"price"`
	MinimumBidDifference float64       `json:"minimum_bid_difference"`
	StartTime            time.Time     `json:"start_time"`
	EndTime              time.Time     `json:"end_time"`
	HighestBid           *float64      `json:"highest_bid"`
	HighestBidder        string        `json:"highest_bidder"`
	TotalBids            int           `json:"total_bids"`
	Status               AuctionStatus `json:"status"`

	// Version increments on every committed mutation and guards
	// read-modify-write cycles against concurrent writers.
	Version uint64 `json:"-"`
}

// Bidder represents a participant in the marketplace.
type Bidder struct {
	BidderID        string   `json:"bidder_id"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	Image           string   `json:"image"`
	ProfileComplete bool     `json:"profile_complete"`
	BiddingHistory  []string `json:"bidding_history"` // ledger entry IDs
}

// Raise is a single bid amount in a ledger entry's sequence.
type Raise struct {
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
}

// LedgerEntry is the append-only bid history of one bidder on one auction.
// At most one entry exists per (auction, bidder); the latest raise is the
// bidder's current standing bid.
type LedgerEntry struct {
	EntryID   string      `json:"entry_id"`
	AuctionID string      `json:"auction_id"`
	BidderID  string      `json:"bidder_id"`
	Raises    []Raise     `json:"raises"`
	Status    EntryStatus `json:"status"`
}

// StandingBid returns the entry's latest raise; ok is false for an empty entry.
func (e LedgerEntry) StandingBid() (Raise, bool) {
	if len(e.Raises) == 0 {
		return Raise{}, false
	}
	return e.Raises[len(e.Raises)-1], true
}

// RankedRaise is one flattened raise in an auction's ranked bid history.
type RankedRaise struct {
	EntryID  string      `json:"entry_id"`
	BidderID string      `json:"bidder_id"`
	Amount   float64     `json:"amount"`
	Time     time.Time   `json:"time"`
	Status   EntryStatus `json:"status"`
}
