package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/labstack/echo/v4"

	"github.com/aman-zulfiqar/jupiter-swap-go/jupiter"
)

func splitCSVQuery(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func parsePubkeyParam(c echo.Context, name string) (solana.PublicKey, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return solana.PublicKey{}, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	pk, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		return solana.PublicKey{}, echo.NewHTTPError(http.StatusBadRequest, name+" is not a valid pubkey")
	}
	return pk, nil
}

// Quote proxies the quote endpoint, validating parameters before
// handing them to the client.
func (h *Handlers) Quote(c echo.Context) error {
	inputMint, err := parsePubkeyParam(c, "inputMint")
	if err != nil {
		return h.err(c, http.StatusBadRequest, "invalid inputMint", map[string]any{"inputMint": err.Error()})
	}
	outputMint, err := parsePubkeyParam(c, "outputMint")
	if err != nil {
		return h.err(c, http.StatusBadRequest, "invalid outputMint", map[string]any{"outputMint": err.Error()})
	}

	amountStr := strings.TrimSpace(c.QueryParam("amount"))
	if amountStr == "" {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amount": "required"})
	}
	amount, err := strconv.ParseUint(amountStr, 10, 64)
	if err != nil || amount == 0 {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amount": "must be a positive uint64"})
	}

	req := &jupiter.QuoteRequest{
		InputMint:  inputMint,
		OutputMint: outputMint,
		Amount:     amount,
	}

	if v := strings.TrimSpace(c.QueryParam("slippageBps")); v != "" {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid slippageBps", map[string]any{"slippageBps": "must be uint16"})
		}
		req.SlippageBps = uint16(n)
	}

	switch mode := jupiter.SwapMode(strings.TrimSpace(c.QueryParam("swapMode"))); mode {
	case "", jupiter.SwapModeExactIn, jupiter.SwapModeExactOut:
		req.SwapMode = mode
	default:
		return h.err(c, http.StatusBadRequest, "invalid swapMode", map[string]any{"swapMode": "must be ExactIn or ExactOut"})
	}

	if v := strings.TrimSpace(c.QueryParam("onlyDirectRoutes")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid onlyDirectRoutes", map[string]any{"onlyDirectRoutes": "must be boolean"})
		}
		req.OnlyDirectRoutes = &b
	}

	if v := strings.TrimSpace(c.QueryParam("restrictIntermediateTokens")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid restrictIntermediateTokens", map[string]any{"restrictIntermediateTokens": "must be boolean"})
		}
		req.RestrictIntermediateTokens = &b
	}

	if v := strings.TrimSpace(c.QueryParam("asLegacyTransaction")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid asLegacyTransaction", map[string]any{"asLegacyTransaction": "must be boolean"})
		}
		req.AsLegacyTransaction = &b
	}

	if v := strings.TrimSpace(c.QueryParam("platformFeeBps")); v != "" {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid platformFeeBps", map[string]any{"platformFeeBps": "must be uint16"})
		}
		bps := uint16(n)
		req.PlatformFeeBps = &bps
	}

	if v := strings.TrimSpace(c.QueryParam("maxAccounts")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid maxAccounts", map[string]any{"maxAccounts": "must be uint64"})
		}
		req.MaxAccounts = &n
	}

	req.Dexes = splitCSVQuery(c.QueryParams()["dexes"])
	req.ExcludedDexes = splitCSVQuery(c.QueryParams()["excludeDexes"])

	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	quote, err := h.Jupiter.Quote(ctx, req)
	if err != nil {
		return h.upstreamErr(c, err)
	}

	h.recordQuote(quote)

	return c.JSON(http.StatusOK, quote)
}
