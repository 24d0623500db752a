package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/jupiter-swap-go/internal/history"
	"github.com/aman-zulfiqar/jupiter-swap-go/jupiter"
)

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Jupiter *jupiter.Client  // Swap API client
	History history.Recorder // Recent quote activity log (optional)
	DevMode bool             // Enable detailed error responses in development
	Logger  *logrus.Logger   // Structured logger
}

// log returns the configured logger, falling back to the standard one
// so a partially wired Handlers never panics on a log call.
func (h *Handlers) log() *logrus.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logrus.StandardLogger()
}

// err returns a standardized JSON error response
// In dev mode, includes additional error details for debugging
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

// withTimeout creates a context with timeout, defaulting to 10 seconds if duration <= 0
func (h *Handlers) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// RecentQuotes returns recent quote activity with optional limit parameter
// Accepts limit query parameter (default: 100, range: 1-100)
func (h *Handlers) RecentQuotes(c echo.Context) error {
	if h.History == nil {
		return h.err(c, http.StatusBadRequest, "quote history is not configured", nil)
	}

	limitStr := c.QueryParam("limit")
	limit := 100
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid limit", map[string]any{"limit": "must be an integer"})
		}
		limit = n
	}
	if limit < 1 || limit > 100 {
		return h.err(c, http.StatusBadRequest, "invalid limit", map[string]any{"limit": "min 1 max 100"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.History.RecentQuotes(ctx, int64(limit))
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to get recent quotes", nil)
	}
	return c.JSON(http.StatusOK, RecentQuotesResponse{Items: items})
}

// QuotesLive streams quote events to the client as server-sent events.
// The stream stays open until the client disconnects or the recorder
// closes the subscription.
func (h *Handlers) QuotesLive(c echo.Context) error {
	if h.History == nil {
		return h.err(c, http.StatusBadRequest, "quote history is not configured", nil)
	}

	ctx := c.Request().Context()
	ch, err := h.History.SubscribeQuotes(ctx)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to subscribe to quote events", nil)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-store")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.log().WithError(err).Warn("failed to marshal quote event")
				continue
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

// recordQuote logs served quotes best-effort; failures never affect the response
func (h *Handlers) recordQuote(quote *jupiter.QuoteResponse) {
	if h.History == nil {
		return
	}

	routes := make([]string, 0, len(quote.RoutePlan))
	for _, step := range quote.RoutePlan {
		routes = append(routes, step.SwapInfo.Label)
	}
	ev := &history.QuoteEvent{
		Timestamp:      time.Now().UTC(),
		InputMint:      quote.InputMint.String(),
		OutputMint:     quote.OutputMint.String(),
		InAmount:       quote.InAmount,
		OutAmount:      quote.OutAmount,
		SlippageBps:    quote.SlippageBps,
		PriceImpactPct: quote.PriceImpactPct,
		Routes:         routes,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := h.History.AddQuote(ctx, ev); err != nil {
		h.log().WithError(err).Warn("failed to record quote event")
	}
	if err := h.History.PublishQuote(ctx, ev); err != nil {
		h.log().WithError(err).Warn("failed to publish quote event")
	}
}
