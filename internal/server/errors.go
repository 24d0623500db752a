package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aman-zulfiqar/jupiter-swap-go/jupiter"
)

// NotFoundJSON returns a custom HTTP error handler that returns JSON responses
// This ensures all errors (including 404s) have consistent JSON format
func NotFoundJSON() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			_ = c.JSON(he.Code, ErrorResponse{
				Error: http.StatusText(he.Code),
				Code:  he.Code,
			})
			return
		}

		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  http.StatusInternalServerError,
		})
	}
}

// upstreamErr maps a swap API client failure to a gateway response.
// Status and decode failures mean the upstream answered badly (502);
// a deadline means it did not answer at all (504).
func (h *Handlers) upstreamErr(c echo.Context, err error) error {
	var statusErr *jupiter.StatusError
	if errors.As(err, &statusErr) {
		return h.err(c, http.StatusBadGateway, "upstream rejected request", map[string]any{
			"upstreamStatus": statusErr.StatusCode,
			"upstreamBody":   statusErr.Body,
		})
	}

	var decodeErr *jupiter.DecodeError
	if errors.As(err, &decodeErr) {
		return h.err(c, http.StatusBadGateway, "invalid upstream response", map[string]any{
			"err": err.Error(),
		})
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return h.err(c, http.StatusGatewayTimeout, "upstream timeout", nil)
	}

	return h.err(c, http.StatusBadGateway, "upstream request failed", map[string]any{
		"err": err.Error(),
	})
}
