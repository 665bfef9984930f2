package handler

import (
	"context"
	"fmt"
	"net/http"

	model "auction-engine/internal/models"
	"auction-engine/services/auction/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (model.LedgerEntry, error)
	RankedHistory(auctionID string) ([]model.RankedRaise, error)
	WinningRaise(auctionID string) (model.RankedRaise, error)
	AuctionsForBidder(bidderID string) ([]model.Auction, error)
}

type RetractionServiceInterface interface {
	RetractBid(ctx context.Context, entryID string, amount float64) (model.LedgerEntry, error)
	DeleteAuctions(auctionIDs []string) error
}

type AuctionHandler struct {
	bidding    BiddingServiceInterface
	retraction RetractionServiceInterface
}

func NewAuctionHandler(bidding BiddingServiceInterface, retraction RetractionServiceInterface) *AuctionHandler {
	return &AuctionHandler{bidding: bidding, retraction: retraction}
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	entry, err := h.bidding.PlaceBid(c.Request.Context(), auctionID, req.BidderID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"auction_id": auctionID,
			"bidder_id":  req.BidderID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewLedgerEntryResponse(entry), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"entry_id":   entry.EntryID,
		"auction_id": auctionID,
		"bidder_id":  req.BidderID,
		"amount":     req.Amount,
	})
}

// RetractBidHandler handles DELETE /bids/:bid_id
func (h *AuctionHandler) RetractBidHandler(c *gin.Context) {
	entryID := c.Param("bid_id")

	var req helpers.RetractBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RetractBidHandler", err)
		return
	}

	entry, err := h.retraction.RetractBid(c.Request.Context(), entryID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("RetractBidHandler: failed to retract bid", map[string]any{
			"handler": "RetractBidHandler",
			"bid_id":  entryID,
			"amount":  req.Amount,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewLedgerEntryResponse(entry), "bid retracted successfully")
	helpers.LogSuccess("RetractBidHandler", "bid retracted successfully", map[string]any{
		"bid_id": entryID,
		"amount": req.Amount,
	})
}

// GetAuctionBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetAuctionBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	ranked, err := h.bidding.RankedHistory(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionBidsHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if ranked == nil {
		ranked = []model.RankedRaise{}
	}

	utils.JSONResponse(c, http.StatusOK, ranked, "bids retrieved successfully")
	helpers.LogSuccess("GetAuctionBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(ranked),
	})
}

// GetWinningBidHandler handles GET /auctions/:auction_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	winning, err := h.bidding.WinningRaise(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, winning, "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"bidder_id":  winning.BidderID,
		"amount":     winning.Amount,
	})
}

// GetAuctionsByBidderHandler handles GET /bidders/:bidder_id/auctions
func (h *AuctionHandler) GetAuctionsByBidderHandler(c *gin.Context) {
	bidderID := c.Param("bidder_id")

	auctions, err := h.bidding.AuctionsForBidder(bidderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionsByBidderHandler: error retrieving auctions", map[string]any{"bidder_id": bidderID, "error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
	helpers.LogSuccess("GetAuctionsByBidderHandler", "auctions retrieved successfully", map[string]any{
		"bidder_id": bidderID,
		"count":     len(auctions),
	})
}

// DeleteAuctionsHandler handles DELETE /auctions
func (h *AuctionHandler) DeleteAuctionsHandler(c *gin.Context) {
	var req helpers.DeleteAuctionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "DeleteAuctionsHandler", err)
		return
	}

	if err := h.retraction.DeleteAuctions(req.AuctionIDs); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("DeleteAuctionsHandler: failed to delete auctions", map[string]any{
			"auction_ids": req.AuctionIDs,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auctions deleted successfully")
	helpers.LogSuccess("DeleteAuctionsHandler", "auctions deleted successfully", map[string]any{
		"count": len(req.AuctionIDs),
	})
}
