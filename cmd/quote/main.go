package main

import (
	"context"
	"flag"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/jupiter-swap-go/jupiter"
)

// Well-known mints for convenient defaults
const (
	nativeMint = "So11111111111111111111111111111111111111112"
	usdcMint   = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// main fetches a quote for a token pair and prints its route plan.
// With --user set it also fetches the swap instructions for that quote.
func main() {
	var (
		basePath    = flag.String("base", jupiter.DefaultBasePath, "swap API base path")
		inputMint   = flag.String("in", nativeMint, "input mint (base58)")
		outputMint  = flag.String("out", usdcMint, "output mint (base58)")
		amount      = flag.Uint64("amount", 10000000, "amount in smallest units of the input mint")
		slippageBps = flag.Uint("slippage-bps", 50, "allowed slippage in basis points")
		user        = flag.String("user", "", "user public key; when set, swap instructions are fetched")
		timeout     = flag.Duration("timeout", 30*time.Second, "request timeout")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	in, err := solana.PublicKeyFromBase58(*inputMint)
	if err != nil {
		logger.WithError(err).Fatal("invalid input mint")
	}
	out, err := solana.PublicKeyFromBase58(*outputMint)
	if err != nil {
		logger.WithError(err).Fatal("invalid output mint")
	}

	client := jupiter.NewClient(*basePath, nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	quote, err := client.Quote(ctx, &jupiter.QuoteRequest{
		InputMint:   in,
		OutputMint:  out,
		Amount:      *amount,
		SlippageBps: uint16(*slippageBps),
	})
	if err != nil {
		logger.WithError(err).Fatal("quote failed")
	}

	logger.WithFields(logrus.Fields{
		"inAmount":       quote.InAmount,
		"outAmount":      quote.OutAmount,
		"priceImpactPct": quote.PriceImpactPct,
		"slippageBps":    quote.SlippageBps,
	}).Info("quote received")

	for i, step := range quote.RoutePlan {
		logger.WithFields(logrus.Fields{
			"hop":     i,
			"amm":     step.SwapInfo.Label,
			"in":      step.SwapInfo.InAmount,
			"out":     step.SwapInfo.OutAmount,
			"percent": step.Percent,
		}).Info("route hop")
	}

	if *user == "" {
		return
	}

	userKey, err := solana.PublicKeyFromBase58(*user)
	if err != nil {
		logger.WithError(err).Fatal("invalid user public key")
	}

	ixs, err := client.SwapInstructions(ctx, jupiter.NewSwapRequest(userKey, *quote))
	if err != nil {
		logger.WithError(err).Fatal("swap-instructions failed")
	}

	logger.WithFields(logrus.Fields{
		"computeBudget": len(ixs.ComputeBudgetInstructions),
		"setup":         len(ixs.SetupInstructions),
		"cleanup":       ixs.CleanupInstruction != nil,
		"lookupTables":  len(ixs.AddressLookupTableAddresses),
		"total":         len(ixs.Instructions()),
	}).Info("swap instructions received")
}
