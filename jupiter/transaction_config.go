package jupiter

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// TransactionConfig tunes how the API builds the swap transaction. Its
// fields are serialized inline with the rest of a SwapRequest.
type TransactionConfig struct {
	WrapAndUnwrapSol bool              `json:"wrapAndUnwrapSol"`
	FeeAccount       *solana.PublicKey `json:"feeAccount,omitempty"`

	DestinationTokenAccount *solana.PublicKey `json:"destinationTokenAccount,omitempty"`

	// At most one of the two priority-fee knobs should be set; the API
	// rejects requests carrying both.
	ComputeUnitPriceMicroLamports *ComputeUnitPriceMicroLamports `json:"computeUnitPriceMicroLamports,omitempty"`
	PrioritizationFeeLamports     *PrioritizationFeeLamports     `json:"prioritizationFeeLamports,omitempty"`

	DynamicComputeUnitLimit bool `json:"dynamicComputeUnitLimit,omitempty"`
	AsLegacyTransaction     bool `json:"asLegacyTransaction,omitempty"`
	UseSharedAccounts       bool `json:"useSharedAccounts"`
	UseTokenLedger          bool `json:"useTokenLedger,omitempty"`
}

// DefaultTransactionConfig returns the API's documented defaults:
// wrap/unwrap SOL and shared accounts on, everything else off.
func DefaultTransactionConfig() TransactionConfig {
	return TransactionConfig{
		WrapAndUnwrapSol:  true,
		UseSharedAccounts: true,
	}
}

// ComputeUnitPriceMicroLamports is either an exact price in
// micro-lamports per compute unit, or "auto" to let the API pick one.
type ComputeUnitPriceMicroLamports struct {
	Auto          bool
	MicroLamports uint64
}

func (c ComputeUnitPriceMicroLamports) MarshalJSON() ([]byte, error) {
	if c.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(c.MicroLamports)
}

func (c *ComputeUnitPriceMicroLamports) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "auto" {
			return fmt.Errorf("invalid computeUnitPriceMicroLamports: %q", s)
		}
		*c = ComputeUnitPriceMicroLamports{Auto: true}
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid computeUnitPriceMicroLamports: %s", data)
	}
	*c = ComputeUnitPriceMicroLamports{MicroLamports: n}
	return nil
}

// PrioritizationFeeLamports caps the priority fee of the transaction.
// Exactly one of the three forms is used: an exact lamport amount,
// "auto", or an auto amount scaled by a multiplier.
type PrioritizationFeeLamports struct {
	Auto           bool
	AutoMultiplier uint64
	Lamports       uint64
}

func (p PrioritizationFeeLamports) MarshalJSON() ([]byte, error) {
	switch {
	case p.Auto:
		return json.Marshal("auto")
	case p.AutoMultiplier > 0:
		return json.Marshal(map[string]uint64{"autoMultiplier": p.AutoMultiplier})
	default:
		return json.Marshal(p.Lamports)
	}
}

func (p *PrioritizationFeeLamports) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "auto" {
			return fmt.Errorf("invalid prioritizationFeeLamports: %q", s)
		}
		*p = PrioritizationFeeLamports{Auto: true}
		return nil
	}
	var obj struct {
		AutoMultiplier uint64 `json:"autoMultiplier"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.AutoMultiplier > 0 {
		*p = PrioritizationFeeLamports{AutoMultiplier: obj.AutoMultiplier}
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid prioritizationFeeLamports: %s", data)
	}
	*p = PrioritizationFeeLamports{Lamports: n}
	return nil
}
