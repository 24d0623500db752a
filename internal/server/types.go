package server

import (
	"github.com/aman-zulfiqar/jupiter-swap-go/internal/history"
)

// ErrorResponse represents a standardized error response format
type ErrorResponse struct {
	Error   string `json:"error"`             // Human-readable error message
	Code    int    `json:"code"`              // HTTP status code
	Details any    `json:"details,omitempty"` // Additional error details (dev mode only)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK bool `json:"ok"`
}

// RecentQuotesResponse lists recent quote activity
type RecentQuotesResponse struct {
	Items []*history.QuoteEvent `json:"items"`
}

// AccountMetaDTO is the JSON form of one instruction account
type AccountMetaDTO struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

// InstructionDTO is the JSON form of a single instruction: base58
// pubkeys, base64 data
type InstructionDTO struct {
	ProgramID string           `json:"programId"`
	Accounts  []AccountMetaDTO `json:"accounts"`
	Data      []byte           `json:"data"`
}

// SwapInstructionsDTO is the proxy's response for swap-instructions
type SwapInstructionsDTO struct {
	TokenLedgerInstruction      *InstructionDTO  `json:"tokenLedgerInstruction,omitempty"`
	ComputeBudgetInstructions   []InstructionDTO `json:"computeBudgetInstructions"`
	SetupInstructions           []InstructionDTO `json:"setupInstructions"`
	SwapInstruction             InstructionDTO   `json:"swapInstruction"`
	CleanupInstruction          *InstructionDTO  `json:"cleanupInstruction,omitempty"`
	AddressLookupTableAddresses []string         `json:"addressLookupTableAddresses"`
}
