package history

import (
	"context"
	"io"
	"time"
)

// QuoteEvent is one quote served by the proxy, kept for the recent
// activity feed.
type QuoteEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	InputMint      string    `json:"input_mint"`
	OutputMint     string    `json:"output_mint"`
	InAmount       uint64    `json:"in_amount"`
	OutAmount      uint64    `json:"out_amount"`
	SlippageBps    uint16    `json:"slippage_bps"`
	PriceImpactPct string    `json:"price_impact_pct"`
	Routes         []string  `json:"routes"`
}

// Recorder keeps a bounded log of recent quote activity and fans it
// out to subscribers. Implementations are best-effort sinks: the proxy
// never blocks a response on them.
type Recorder interface {
	// AddQuote appends an event to the recent-quotes list
	AddQuote(ctx context.Context, ev *QuoteEvent) error

	// RecentQuotes retrieves the most recent events, newest first
	RecentQuotes(ctx context.Context, limit int64) ([]*QuoteEvent, error)

	// PublishQuote publishes an event to the live channel
	PublishQuote(ctx context.Context, ev *QuoteEvent) error

	// SubscribeQuotes subscribes to live quote events
	SubscribeQuotes(ctx context.Context) (<-chan *QuoteEvent, error)

	// Ping checks if the backing store is reachable
	Ping(ctx context.Context) error

	io.Closer
}
