// Package common holds the response envelope and helpers shared by every
// webapi handler package.
package common

import (
	"errors"

	"github.com/cardex/cardex/pkg/domain"
	domaincard "github.com/cardex/cardex/pkg/domain/card"
	"github.com/cardex/cardex/pkg/domain/catalog"
	domainpack "github.com/cardex/cardex/pkg/domain/pack"
	domainreward "github.com/cardex/cardex/pkg/domain/reward"
	domaintrade "github.com/cardex/cardex/pkg/domain/trade"
	domainuser "github.com/cardex/cardex/pkg/domain/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. Extras may carry a
// detail string and/or an explicit status code; when no status is given the
// error is mapped through ErrorToStatusCode.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extras ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	for _, extra := range extras {
		switch v := extra.(type) {
		case string:
			pd.Detail = v
		case int:
			pd.Status = v
		}
	}
	if pd.Status == 0 {
		pd.Status = ErrorToStatusCode(err)
	}
	if pd.Detail == "" && err != nil {
		pd.Detail = err.Error()
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(pd.Status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Trade verdict
// reasons are part of the API surface and map the same way the listing
// endpoints report them.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domaintrade.ErrTradeNotFound),
		errors.Is(err, domaintrade.ErrCompletedTradeNotFound),
		errors.Is(err, domainuser.ErrUserNotFound),
		errors.Is(err, domaincard.ErrCardNotFound),
		errors.Is(err, catalog.ErrCollectionNotFound),
		errors.Is(err, catalog.ErrVehicleNotFound),
		errors.Is(err, domainreward.ErrRewardNotFound),
		errors.Is(err, domainpack.ErrPackNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domainreward.ErrAlreadyClaimed):
		return fiber.StatusConflict
	case errors.Is(err, domainuser.ErrUserUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domaintrade.ErrNotTradeOwner):
		return fiber.StatusForbidden
	case errors.Is(err, domaintrade.ErrInsufficientFunds),
		errors.Is(err, domainuser.ErrInsufficientCurrency):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domaintrade.ErrSelfTrade),
		errors.Is(err, domaintrade.ErrBuyerCardRequired),
		errors.Is(err, domaintrade.ErrSellerDoesNotOwnCard),
		errors.Is(err, domaintrade.ErrCardNotSellers),
		errors.Is(err, domaintrade.ErrPriceNotPositive),
		errors.Is(err, domaintrade.ErrWantCardMissing),
		errors.Is(err, domaintrade.ErrBuyerDoesNotOwnCard),
		errors.Is(err, domaintrade.ErrCardNotBuyers),
		errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it with
// go-playground/validator. On failure the error response is already written
// and the returned pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		detail := "Validation failed"
		if errors.As(err, &verrs) && len(verrs) > 0 {
			detail = verrs[0].Error()
		}
		_ = ProblemDetailsJSON(c, "Validation failed", nil, detail, fiber.StatusBadRequest)
		return nil, err
	}
	return &input, nil
}
