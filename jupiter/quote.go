package jupiter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// SwapMode selects which side of the trade is fixed.
type SwapMode string

const (
	SwapModeExactIn  SwapMode = "ExactIn"
	SwapModeExactOut SwapMode = "ExactOut"
)

// QuoteRequest is the parameter set for the quote endpoint. Amount is
// in the smallest unit of the fixed-side mint (lamports for SOL).
type QuoteRequest struct {
	InputMint   solana.PublicKey
	OutputMint  solana.PublicKey
	Amount      uint64
	SlippageBps uint16

	SwapMode      SwapMode
	Dexes         []string
	ExcludedDexes []string
	QuoteType     string

	RestrictIntermediateTokens *bool
	OnlyDirectRoutes           *bool
	AsLegacyTransaction        *bool
	PreferLiquidDexes          *bool

	PlatformFeeBps *uint16
	MaxAccounts    *uint64
}

// queryValues encodes the request as the flat query-string form the
// quote endpoint expects. Unset optional fields are omitted.
func (r *QuoteRequest) queryValues() url.Values {
	q := url.Values{}
	q.Set("inputMint", r.InputMint.String())
	q.Set("outputMint", r.OutputMint.String())
	q.Set("amount", fmt.Sprintf("%d", r.Amount))
	q.Set("slippageBps", fmt.Sprintf("%d", r.SlippageBps))

	if r.SwapMode != "" {
		q.Set("swapMode", string(r.SwapMode))
	}
	if len(r.Dexes) > 0 {
		q.Set("dexes", strings.Join(r.Dexes, ","))
	}
	if len(r.ExcludedDexes) > 0 {
		q.Set("excludeDexes", strings.Join(r.ExcludedDexes, ","))
	}
	if r.QuoteType != "" {
		q.Set("quoteType", r.QuoteType)
	}
	if r.RestrictIntermediateTokens != nil {
		q.Set("restrictIntermediateTokens", fmt.Sprintf("%t", *r.RestrictIntermediateTokens))
	}
	if r.OnlyDirectRoutes != nil {
		q.Set("onlyDirectRoutes", fmt.Sprintf("%t", *r.OnlyDirectRoutes))
	}
	if r.AsLegacyTransaction != nil {
		q.Set("asLegacyTransaction", fmt.Sprintf("%t", *r.AsLegacyTransaction))
	}
	if r.PreferLiquidDexes != nil {
		q.Set("preferLiquidDexes", fmt.Sprintf("%t", *r.PreferLiquidDexes))
	}
	if r.PlatformFeeBps != nil {
		q.Set("platformFeeBps", fmt.Sprintf("%d", *r.PlatformFeeBps))
	}
	if r.MaxAccounts != nil {
		q.Set("maxAccounts", fmt.Sprintf("%d", *r.MaxAccounts))
	}
	return q
}

// QuoteResponse is a priced route for a token pair. Amount fields are
// transmitted as JSON strings and decoded into uint64.
type QuoteResponse struct {
	InputMint            solana.PublicKey `json:"inputMint"`
	InAmount             uint64           `json:"inAmount,string"`
	OutputMint           solana.PublicKey `json:"outputMint"`
	OutAmount            uint64           `json:"outAmount,string"`
	OtherAmountThreshold uint64           `json:"otherAmountThreshold,string"`
	SwapMode             SwapMode         `json:"swapMode"`
	SlippageBps          uint16           `json:"slippageBps"`
	PlatformFee          *PlatformFee     `json:"platformFee,omitempty"`
	PriceImpactPct       string           `json:"priceImpactPct"`
	RoutePlan            []RoutePlanStep  `json:"routePlan"`

	ContextSlot uint64  `json:"contextSlot,omitempty"`
	TimeTaken   float64 `json:"timeTaken,omitempty"`
}

// PlatformFee is the integrator fee attached to a quote, if any.
type PlatformFee struct {
	Amount uint64 `json:"amount,string,omitempty"`
	FeeBps uint16 `json:"feeBps,omitempty"`
}

// RoutePlanStep is one hop of the route fulfilling a quote.
type RoutePlanStep struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  uint8    `json:"percent"`
}

// SwapInfo describes the AMM and amounts of a single hop.
type SwapInfo struct {
	AmmKey     solana.PublicKey `json:"ammKey"`
	Label      string           `json:"label,omitempty"`
	InputMint  solana.PublicKey `json:"inputMint"`
	OutputMint solana.PublicKey `json:"outputMint"`
	InAmount   uint64           `json:"inAmount,string"`
	OutAmount  uint64           `json:"outAmount,string"`
	FeeAmount  uint64           `json:"feeAmount,string"`
	FeeMint    solana.PublicKey `json:"feeMint"`
}
