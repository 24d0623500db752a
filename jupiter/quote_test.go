package jupiter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRequest_QueryValues(t *testing.T) {
	req := &QuoteRequest{
		InputMint:   nativeMint,
		OutputMint:  usdcMint,
		Amount:      10000000,
		SlippageBps: 50,
	}

	q := req.queryValues()
	assert.Equal(t, nativeMint.String(), q.Get("inputMint"))
	assert.Equal(t, usdcMint.String(), q.Get("outputMint"))
	assert.Equal(t, "10000000", q.Get("amount"))
	assert.Equal(t, "50", q.Get("slippageBps"))

	// Unset optionals stay out of the query string.
	for _, key := range []string{
		"swapMode", "dexes", "excludeDexes", "quoteType", "restrictIntermediateTokens",
		"onlyDirectRoutes", "asLegacyTransaction", "preferLiquidDexes",
		"platformFeeBps", "maxAccounts",
	} {
		assert.False(t, q.Has(key), "unexpected query param %s", key)
	}
}

func TestQuoteRequest_QueryValuesOptionals(t *testing.T) {
	restrict := true
	legacy := false
	liquid := true
	feeBps := uint16(20)
	maxAccounts := uint64(64)

	req := &QuoteRequest{
		InputMint:                  nativeMint,
		OutputMint:                 usdcMint,
		Amount:                     1,
		SwapMode:                   SwapModeExactOut,
		Dexes:                      []string{"Orca", "Raydium"},
		ExcludedDexes:              []string{"Serum"},
		QuoteType:                  "internal",
		RestrictIntermediateTokens: &restrict,
		AsLegacyTransaction:        &legacy,
		PreferLiquidDexes:          &liquid,
		PlatformFeeBps:             &feeBps,
		MaxAccounts:                &maxAccounts,
	}

	q := req.queryValues()
	assert.Equal(t, "ExactOut", q.Get("swapMode"))
	assert.Equal(t, "Orca,Raydium", q.Get("dexes"))
	assert.Equal(t, "Serum", q.Get("excludeDexes"))
	assert.Equal(t, "internal", q.Get("quoteType"))
	assert.Equal(t, "true", q.Get("restrictIntermediateTokens"))
	assert.Equal(t, "false", q.Get("asLegacyTransaction"))
	assert.Equal(t, "true", q.Get("preferLiquidDexes"))
	assert.Equal(t, "20", q.Get("platformFeeBps"))
	assert.Equal(t, "64", q.Get("maxAccounts"))
}

func TestQuoteResponse_WireShape(t *testing.T) {
	wire := `{
	  "inputMint": "So11111111111111111111111111111111111111112",
	  "inAmount": "10000000",
	  "outputMint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	  "outAmount": "1998832",
	  "otherAmountThreshold": "1988838",
	  "swapMode": "ExactIn",
	  "slippageBps": 50,
	  "platformFee": {"amount": "400", "feeBps": 20},
	  "priceImpactPct": "0.0001",
	  "routePlan": [
	    {"swapInfo": {
	       "ammKey": "9W959DqEETiGZocYWCQPaJ6sBmUzgfxXfqGeTEdp3aQP",
	       "label": "Orca",
	       "inputMint": "So11111111111111111111111111111111111111112",
	       "outputMint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	       "inAmount": "10000000",
	       "outAmount": "1998832",
	       "feeAmount": "30000",
	       "feeMint": "So11111111111111111111111111111111111111112"
	     },
	     "percent": 100}
	  ],
	  "contextSlot": 277930679,
	  "timeTaken": 0.0039
	}`

	var quote QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(wire), &quote))

	assert.Equal(t, nativeMint, quote.InputMint)
	assert.Equal(t, uint64(10000000), quote.InAmount)
	assert.Equal(t, uint64(1998832), quote.OutAmount)
	assert.Equal(t, uint64(1988838), quote.OtherAmountThreshold)
	assert.Equal(t, SwapModeExactIn, quote.SwapMode)
	require.NotNil(t, quote.PlatformFee)
	assert.Equal(t, uint64(400), quote.PlatformFee.Amount)
	assert.Equal(t, uint16(20), quote.PlatformFee.FeeBps)
	require.Len(t, quote.RoutePlan, 1)
	assert.Equal(t, uint8(100), quote.RoutePlan[0].Percent)
	assert.Equal(t, uint64(30000), quote.RoutePlan[0].SwapInfo.FeeAmount)
	assert.Equal(t, uint64(277930679), quote.ContextSlot)

	// Re-encoding keeps amounts as strings for the swap endpoints.
	data, err := json.Marshal(quote)
	require.NoError(t, err)
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, `"10000000"`, string(obj["inAmount"]))
	assert.Equal(t, `"1998832"`, string(obj["outAmount"]))
}
