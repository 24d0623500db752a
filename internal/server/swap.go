package server

import (
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/labstack/echo/v4"

	"github.com/aman-zulfiqar/jupiter-swap-go/jupiter"
)

func bindSwapRequest(c echo.Context) (*jupiter.SwapRequest, error) {
	// Bind over the defaults so omitted config fields keep them.
	req := &jupiter.SwapRequest{
		TransactionConfig: jupiter.DefaultTransactionConfig(),
	}
	if err := c.Bind(req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if req.UserPublicKey.IsZero() {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "userPublicKey is required")
	}
	if req.QuoteResponse.InAmount == 0 || len(req.QuoteResponse.RoutePlan) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "quoteResponse is required")
	}
	return req, nil
}

// Swap proxies the swap endpoint and returns the serialized
// transaction built upstream.
func (h *Handlers) Swap(c echo.Context) error {
	req, err := bindSwapRequest(c)
	if err != nil {
		he := err.(*echo.HTTPError)
		return h.err(c, he.Code, he.Message.(string), nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res, err := h.Jupiter.Swap(ctx, req)
	if err != nil {
		return h.upstreamErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// SwapInstructions proxies the swap-instructions endpoint, re-encoding
// the typed instructions into their JSON wire form.
func (h *Handlers) SwapInstructions(c echo.Context) error {
	req, err := bindSwapRequest(c)
	if err != nil {
		he := err.(*echo.HTTPError)
		return h.err(c, he.Code, he.Message.(string), nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	res, err := h.Jupiter.SwapInstructions(ctx, req)
	if err != nil {
		return h.upstreamErr(c, err)
	}

	dto, err := toSwapInstructionsDTO(res)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to encode instructions", nil)
	}
	return c.JSON(http.StatusOK, dto)
}

func toInstructionDTO(ix solana.Instruction) (InstructionDTO, error) {
	data, err := ix.Data()
	if err != nil {
		return InstructionDTO{}, err
	}

	accounts := make([]AccountMetaDTO, 0, len(ix.Accounts()))
	for _, meta := range ix.Accounts() {
		accounts = append(accounts, AccountMetaDTO{
			Pubkey:     meta.PublicKey.String(),
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		})
	}
	return InstructionDTO{
		ProgramID: ix.ProgramID().String(),
		Accounts:  accounts,
		Data:      data,
	}, nil
}

func toInstructionDTOs(ixs []solana.Instruction) ([]InstructionDTO, error) {
	out := make([]InstructionDTO, 0, len(ixs))
	for _, ix := range ixs {
		dto, err := toInstructionDTO(ix)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func toSwapInstructionsDTO(res *jupiter.SwapInstructionsResponse) (*SwapInstructionsDTO, error) {
	computeBudget, err := toInstructionDTOs(res.ComputeBudgetInstructions)
	if err != nil {
		return nil, err
	}
	setup, err := toInstructionDTOs(res.SetupInstructions)
	if err != nil {
		return nil, err
	}
	swap, err := toInstructionDTO(res.SwapInstruction)
	if err != nil {
		return nil, err
	}

	dto := &SwapInstructionsDTO{
		ComputeBudgetInstructions: computeBudget,
		SetupInstructions:         setup,
		SwapInstruction:           swap,
	}

	if res.TokenLedgerInstruction != nil {
		ledger, err := toInstructionDTO(res.TokenLedgerInstruction)
		if err != nil {
			return nil, err
		}
		dto.TokenLedgerInstruction = &ledger
	}
	if res.CleanupInstruction != nil {
		cleanup, err := toInstructionDTO(res.CleanupInstruction)
		if err != nil {
			return nil, err
		}
		dto.CleanupInstruction = &cleanup
	}

	dto.AddressLookupTableAddresses = make([]string, 0, len(res.AddressLookupTableAddresses))
	for _, addr := range res.AddressLookupTableAddresses {
		dto.AddressLookupTableAddresses = append(dto.AddressLookupTableAddresses, addr.String())
	}
	return dto, nil
}
