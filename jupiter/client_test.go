package jupiter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nativeMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	usdcMint   = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

func testQuoteResponse() QuoteResponse {
	return QuoteResponse{
		InputMint:            nativeMint,
		InAmount:             10000000,
		OutputMint:           usdcMint,
		OutAmount:            2000000,
		OtherAmountThreshold: 1990000,
		SwapMode:             SwapModeExactIn,
		SlippageBps:          50,
		PriceImpactPct:       "0.0012",
		RoutePlan: []RoutePlanStep{
			{
				SwapInfo: SwapInfo{
					AmmKey:     solana.MustPublicKeyFromBase58("9W959DqEETiGZocYWCQPaJ6sBmUzgfxXfqGeTEdp3aQP"),
					Label:      "Orca",
					InputMint:  nativeMint,
					OutputMint: usdcMint,
					InAmount:   10000000,
					OutAmount:  2000000,
					FeeAmount:  30000,
					FeeMint:    nativeMint,
				},
				Percent: 100,
			},
		},
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient("https://example.com/v6/", nil)
	assert.Equal(t, "https://example.com/v6", c.BasePath)
	assert.NotNil(t, c.HTTP)

	c = NewClient("", nil)
	assert.Equal(t, DefaultBasePath, c.BasePath)

	c = NewDefaultClient()
	assert.Equal(t, DefaultBasePath, c.BasePath)
	assert.NotNil(t, c.HTTP)
}

func TestClient_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/quote", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, nativeMint.String(), q.Get("inputMint"))
		assert.Equal(t, usdcMint.String(), q.Get("outputMint"))
		assert.Equal(t, "10000000", q.Get("amount"))
		assert.Equal(t, "50", q.Get("slippageBps"))
		assert.Equal(t, "true", q.Get("onlyDirectRoutes"))

		_ = json.NewEncoder(w).Encode(testQuoteResponse())
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	direct := true
	quote, err := client.Quote(context.Background(), &QuoteRequest{
		InputMint:        nativeMint,
		OutputMint:       usdcMint,
		Amount:           10000000,
		SlippageBps:      50,
		OnlyDirectRoutes: &direct,
	})
	require.NoError(t, err)

	// The quoted input amount must equal the requested amount exactly.
	assert.Equal(t, uint64(10000000), quote.InAmount)
	assert.Equal(t, uint64(2000000), quote.OutAmount)
	require.Len(t, quote.RoutePlan, 1)
	assert.Equal(t, "Orca", quote.RoutePlan[0].SwapInfo.Label)
}

func TestClient_Quote_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Cannot compute other amount threshold"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	_, err := client.Quote(context.Background(), &QuoteRequest{
		InputMint:  nativeMint,
		OutputMint: usdcMint,
		Amount:     1,
	})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "Cannot compute")
}

func TestClient_Quote_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, &http.Client{})

	_, err := client.Quote(context.Background(), &QuoteRequest{
		InputMint:  nativeMint,
		OutputMint: usdcMint,
		Amount:     1,
	})
	require.Error(t, err)

	var statusErr *StatusError
	assert.NotErrorAs(t, err, &statusErr)
	var decodeErr *DecodeError
	assert.NotErrorAs(t, err, &decodeErr)
}

func TestClient_Swap(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	quote := testQuoteResponse()
	rawTx := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/swap", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			UserPublicKey    string        `json:"userPublicKey"`
			QuoteResponse    QuoteResponse `json:"quoteResponse"`
			WrapAndUnwrapSol bool          `json:"wrapAndUnwrapSol"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.Equal(t, user.String(), body.UserPublicKey)
		// The quote must pass through to the swap endpoint unchanged.
		assert.Equal(t, quote, body.QuoteResponse)
		assert.True(t, body.WrapAndUnwrapSol)

		_ = json.NewEncoder(w).Encode(SwapResponse{
			SwapTransaction:      rawTx,
			LastValidBlockHeight: 123456789,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	res, err := client.Swap(context.Background(), NewSwapRequest(user, quote))
	require.NoError(t, err)
	assert.Equal(t, rawTx, res.SwapTransaction)
	assert.Equal(t, uint64(123456789), res.LastValidBlockHeight)
}

func TestClient_SwapInstructions(t *testing.T) {
	user := solana.NewWallet().PublicKey()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/swap-instructions", r.URL.Path)
		_, _ = w.Write([]byte(swapInstructionsFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	res, err := client.SwapInstructions(context.Background(), NewSwapRequest(user, testQuoteResponse()))
	require.NoError(t, err)

	require.NotNil(t, res.SwapInstruction)
	assert.Equal(t, "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
		res.SwapInstruction.ProgramID().String())

	ixs := res.Instructions()
	assert.NotEmpty(t, ixs)
}

func TestClient_SwapRoundTrip(t *testing.T) {
	// A quote parsed from the quote endpoint must be accepted by the
	// swap endpoint without a decode failure on either side.
	quote := testQuoteResponse()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			_ = json.NewEncoder(w).Encode(quote)
		case "/swap":
			var req SwapRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, quote, req.QuoteResponse)
			_ = json.NewEncoder(w).Encode(SwapResponse{
				SwapTransaction:      []byte{0xde, 0xad, 0xbe, 0xef},
				LastValidBlockHeight: 1,
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	ctx := context.Background()

	got, err := client.Quote(ctx, &QuoteRequest{
		InputMint:  nativeMint,
		OutputMint: usdcMint,
		Amount:     10000000,
	})
	require.NoError(t, err)

	res, err := client.Swap(ctx, NewSwapRequest(solana.NewWallet().PublicKey(), *got))
	require.NoError(t, err)
	assert.NotEmpty(t, res.SwapTransaction)
}
