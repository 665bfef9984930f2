package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/closer"
	"auction-engine/internal/config"
	model "auction-engine/internal/models"
	"auction-engine/internal/notifier"
	"auction-engine/internal/realtime"
	"auction-engine/internal/repository"
	retraction "auction-engine/internal/retractionService"
	"auction-engine/internal/server"
	"auction-engine/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLevel(cfg.LogLevel)

	store := repository.NewMemoryStore()
	prepopulate(store)

	var sink notifier.Notifier = notifier.Nop{}
	var ws http.HandlerFunc
	if cfg.WSEnabled {
		hub := realtime.NewHub(cfg.JWTSecret)
		sink = hub
		ws = hub.ServeWS
	}

	biddingSvc := bidding.NewBiddingService(store, sink, cfg.MaxBidRetries, cfg.RetryBackoff)
	retractionSvc := retraction.NewRetractionService(store, cfg.MaxBidRetries, cfg.RetryBackoff)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweep := closer.NewCloser(store, cfg.SweepInterval)
	go sweep.Run(ctx)

	router := server.SetupRouter(biddingSvc, retractionSvc, ws)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{
			"addr":           cfg.Addr(),
			"sweep_interval": cfg.SweepInterval.String(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("forced server shutdown", map[string]any{"error": err.Error()})
	}
	utils.Info("auction server stopped", nil)
}

// prepopulate adds sample auctions and bidders to the in-memory store
func prepopulate(store *repository.MemoryStore) {
	now := time.Now().UTC()

	auctions := []model.Auction{
		{
			AuctionID:            "auction1",
			Title:                "2016 Audi A4 Avant",
			Description:          "Well maintained estate, single owner",
			Price:                7500,
			MinimumBidDifference: 100,
			StartTime:            now.Add(-time.Hour),
			EndTime:              now.Add(48 * time.Hour),
			Status:               model.StatusLive,
		},
		{
			AuctionID:            "auction2",
			Title:                "2019 VW Golf TSI",
			Description:          "Low mileage hatchback",
			Price:                11000,
			MinimumBidDifference: 250,
			StartTime:            now.Add(-time.Hour),
			EndTime:              now.Add(72 * time.Hour),
			Status:               model.StatusLive,
		},
	}
	for _, a := range auctions {
		store.AddAuction(a)
	}

	bidders := []model.Bidder{
		{BidderID: "bidder1", Username: "alice", Email: "alice@example.com", ProfileComplete: true},
		{BidderID: "bidder2", Username: "bob", Email: "bob@example.com", ProfileComplete: true},
	}
	for _, b := range bidders {
		store.AddBidder(b)
	}
}
