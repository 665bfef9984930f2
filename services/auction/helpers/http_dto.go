package helpers

import model "auction-engine/internal/models"

// Request/Response DTOs
type PlaceBidRequest struct {
	BidderID string  `json:"bidder_id" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

type RetractBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type DeleteAuctionsRequest struct {
	AuctionIDs []string `json:"auction_ids" binding:"required,min=1"`
}

type RaiseResponse struct {
	Amount float64 `json:"amount"`
	Time   string  `json:"time"`
}

type LedgerEntryResponse struct {
	EntryID   string          `json:"entry_id"`
	AuctionID string          `json:"auction_id"`
	BidderID  string          `json:"bidder_id"`
	Status    string          `json:"status"`
	Raises    []RaiseResponse `json:"raises"`
}

// NewLedgerEntryResponse converts a ledger entry to its wire form.
func NewLedgerEntryResponse(e model.LedgerEntry) LedgerEntryResponse {
	raises := make([]RaiseResponse, 0, len(e.Raises))
	for _, r := range e.Raises {
		raises = append(raises, RaiseResponse{
			Amount: r.Amount,
			Time:   r.Time.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return LedgerEntryResponse{
		EntryID:   e.EntryID,
		AuctionID: e.AuctionID,
		BidderID:  e.BidderID,
		Status:    string(e.Status),
		Raises:    raises,
	}
}
