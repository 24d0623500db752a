package jupiter

import (
	"github.com/gagliardetto/solana-go"
)

// SwapRequest asks the API to turn a previously obtained quote into a
// transaction. The TransactionConfig fields serialize inline alongside
// userPublicKey and quoteResponse.
type SwapRequest struct {
	UserPublicKey solana.PublicKey `json:"userPublicKey"`
	QuoteResponse QuoteResponse    `json:"quoteResponse"`
	TransactionConfig
}

// NewSwapRequest pairs a quote with the default transaction config.
func NewSwapRequest(user solana.PublicKey, quote QuoteResponse) *SwapRequest {
	return &SwapRequest{
		UserPublicKey:     user,
		QuoteResponse:     quote,
		TransactionConfig: DefaultTransactionConfig(),
	}
}

// SwapResponse carries the serialized, unsigned transaction built by
// the API. SwapTransaction is base64 on the wire.
type SwapResponse struct {
	SwapTransaction           []byte `json:"swapTransaction"`
	LastValidBlockHeight      uint64 `json:"lastValidBlockHeight"`
	PrioritizationFeeLamports uint64 `json:"prioritizationFeeLamports,omitempty"`
}

// accountMetaInternal is the wire shape of an instruction account.
type accountMetaInternal struct {
	Pubkey     solana.PublicKey `json:"pubkey"`
	IsSigner   bool             `json:"isSigner"`
	IsWritable bool             `json:"isWritable"`
}

// instructionInternal is the wire shape of an instruction: base58
// program id and pubkeys, base64 data.
type instructionInternal struct {
	ProgramID solana.PublicKey      `json:"programId"`
	Accounts  []accountMetaInternal `json:"accounts"`
	Data      []byte                `json:"data"`
}

// swapInstructionsResponseInternal is the literal payload of the
// swap-instructions endpoint, prior to reshaping.
type swapInstructionsResponseInternal struct {
	TokenLedgerInstruction      *instructionInternal  `json:"tokenLedgerInstruction"`
	ComputeBudgetInstructions   []instructionInternal `json:"computeBudgetInstructions"`
	SetupInstructions           []instructionInternal `json:"setupInstructions"`
	SwapInstruction             instructionInternal   `json:"swapInstruction"`
	CleanupInstruction          *instructionInternal  `json:"cleanupInstruction"`
	AddressLookupTableAddresses []solana.PublicKey    `json:"addressLookupTableAddresses"`
}

// SwapInstructionsResponse is the client-facing shape of the
// swap-instructions payload, with every wire instruction lifted into a
// solana.Instruction ready for transaction assembly.
type SwapInstructionsResponse struct {
	TokenLedgerInstruction      solana.Instruction
	ComputeBudgetInstructions   []solana.Instruction
	SetupInstructions           []solana.Instruction
	SwapInstruction             solana.Instruction
	CleanupInstruction          solana.Instruction
	AddressLookupTableAddresses []solana.PublicKey
}

// Instructions flattens the response into execution order: compute
// budget, setup, token ledger, swap, cleanup.
func (r *SwapInstructionsResponse) Instructions() []solana.Instruction {
	ixs := make([]solana.Instruction, 0,
		len(r.ComputeBudgetInstructions)+len(r.SetupInstructions)+3)
	ixs = append(ixs, r.ComputeBudgetInstructions...)
	ixs = append(ixs, r.SetupInstructions...)
	if r.TokenLedgerInstruction != nil {
		ixs = append(ixs, r.TokenLedgerInstruction)
	}
	ixs = append(ixs, r.SwapInstruction)
	if r.CleanupInstruction != nil {
		ixs = append(ixs, r.CleanupInstruction)
	}
	return ixs
}

// intoInstruction maps one wire instruction to a solana.Instruction.
// Every wire field lands in exactly one place: programId, the account
// list with its signer/writable bits, and the raw data bytes.
func (ix instructionInternal) intoInstruction() solana.Instruction {
	metas := make([]*solana.AccountMeta, len(ix.Accounts))
	for i, a := range ix.Accounts {
		metas[i] = &solana.AccountMeta{
			PublicKey:  a.Pubkey,
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		}
	}
	return solana.NewInstruction(ix.ProgramID, metas, ix.Data)
}

func intoInstructions(ixs []instructionInternal) []solana.Instruction {
	if len(ixs) == 0 {
		return nil
	}
	out := make([]solana.Instruction, len(ixs))
	for i, ix := range ixs {
		out[i] = ix.intoInstruction()
	}
	return out
}

// intoResponse reshapes the wire payload into the public form. The
// mapping is lossless: optional instructions stay nil when absent and
// lookup table addresses pass through unchanged.
func (internal *swapInstructionsResponseInternal) intoResponse() *SwapInstructionsResponse {
	out := &SwapInstructionsResponse{
		ComputeBudgetInstructions:   intoInstructions(internal.ComputeBudgetInstructions),
		SetupInstructions:           intoInstructions(internal.SetupInstructions),
		SwapInstruction:             internal.SwapInstruction.intoInstruction(),
		AddressLookupTableAddresses: internal.AddressLookupTableAddresses,
	}
	if internal.TokenLedgerInstruction != nil {
		out.TokenLedgerInstruction = internal.TokenLedgerInstruction.intoInstruction()
	}
	if internal.CleanupInstruction != nil {
		out.CleanupInstruction = internal.CleanupInstruction.intoInstruction()
	}
	return out
}
