package notifier

// RoomNotice is the payload delivered to subscribers of one auction room
// when a new highest bid is accepted.
type RoomNotice struct {
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	AuctionID string  `json:"auction_id"`
	Image     string  `json:"image"`
}

// Notifier is the engine's contract with the realtime broadcast channel.
// Both operations are fire-and-forget: the engine logs failures and never
// lets them affect an already committed bid.
type Notifier interface {
	// BroadcastHighestBid fans out the new highest bid to all viewers.
	BroadcastHighestBid(auctionID string, amount float64) error
	// NotifyRoom fans out a notice to subscribers of one auction room.
	NotifyRoom(auctionID string, notice RoomNotice) error
}

// Nop is a Notifier that drops everything. Used in tests and when the
// websocket hub is disabled.
type Nop struct{}

func (Nop) BroadcastHighestBid(string, float64) error { return nil }

func (Nop) NotifyRoom(string, RoomNotice) error { return nil }
