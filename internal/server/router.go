package server

import (
	"net/http"

	bidding "auction-engine/internal/biddingService"
	retraction "auction-engine/internal/retractionService"
	handler "auction-engine/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application. The websocket
// endpoint is optional; pass nil to run without the realtime hub.
func SetupRouter(biddingService *bidding.BiddingService, retractionService *retraction.RetractionService, ws http.HandlerFunc) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(biddingService, retractionService)

	auctions := router.Group("/auctions")
	{
		auctions.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/bids", auctionHandler.GetAuctionBidsHandler)
		auctions.GET("/:auction_id/winning", auctionHandler.GetWinningBidHandler)
		auctions.DELETE("", auctionHandler.DeleteAuctionsHandler)
	}

	bids := router.Group("/bids")
	{
		bids.DELETE("/:bid_id", auctionHandler.RetractBidHandler)
	}

	bidders := router.Group("/bidders")
	{
		bidders.GET("/:bidder_id/auctions", auctionHandler.GetAuctionsByBidderHandler)
	}

	if ws != nil {
		router.GET("/ws", gin.WrapF(ws))
	}

	return router
}
