package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	bidding "auction-engine/internal/biddingService"
	model "auction-engine/internal/models"
	"auction-engine/internal/notifier"
	"auction-engine/internal/repository"
	retraction "auction-engine/internal/retractionService"
	"auction-engine/internal/server"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the router with an in-memory store seeded with
// the given auctions and bidders.
func SetupTestRouter(auctions []model.Auction, bidders []model.Bidder) (*gin.Engine, *repository.MemoryStore) {
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()

	for _, a := range auctions {
		store.AddAuction(a)
	}
	for _, b := range bidders {
		store.AddBidder(b)
	}

	biddingService := bidding.NewBiddingService(store, notifier.Nop{}, 3, time.Millisecond)
	retractionService := retraction.NewRetractionService(store, 3, time.Millisecond)
	router := server.SetupRouter(biddingService, retractionService, nil)
	return router, store
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// LiveAuction builds a live auction usable for most scenarios.
func LiveAuction(auctionID string, price, minDiff float64) model.Auction {
	now := time.Now().UTC()
	return model.Auction{
		AuctionID:            auctionID,
		Title:                auctionID + " title",
		Price:                price,
		MinimumBidDifference: minDiff,
		StartTime:            now.Add(-time.Hour),
		EndTime:              now.Add(time.Hour),
		Status:               model.StatusLive,
	}
}

// CompleteBidder builds a bidder whose profile passes the completeness check.
func CompleteBidder(bidderID string) model.Bidder {
	return model.Bidder{
		BidderID:        bidderID,
		Username:        bidderID,
		Email:           bidderID + "@example.com",
		ProfileComplete: true,
	}
}
