package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrBidderNotFound  = errors.New("bidder not found")
	ErrEntryNotFound   = errors.New("ledger entry not found")
	ErrRaiseNotFound   = errors.New("no raise with that amount in ledger entry")
	ErrNoBids          = errors.New("no bids recorded for auction")
	ErrVersionConflict = errors.New("auction version conflict")
)

// business logic errors
var (
	ErrInvalidBid        = errors.New("invalid bid")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrProfileIncomplete = errors.New("bidder profile is not complete")
	ErrAuctionNotLive    = errors.New("auction is not live")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrAuctionNotStarted = errors.New("auction has not started yet")
	ErrAuctionCap        = errors.New("maximum simultaneous auctions reached")
	ErrTransient         = errors.New("transient storage contention, retry later")
)
