// Package services wraps the API client for the UI host. Every call
// returns a Response envelope; no error escapes to the caller.
package services

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/apiclient"
	"github.com/mrlokans/bookstore/internal/ui/authstate"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

// Envelope messages.
const (
	MsgValidation = "Validation errors have occurred."
	MsgNotFound   = "The requested item could not be found."
	MsgSuccess    = "Operation Reported Success"
	MsgFailure    = "Something went wrong, please try again."

	MsgUnauthorized = "Please log in to continue."
	MsgForbidden    = "You are not allowed to do that."
	MsgConflict     = "The item conflicts with an existing one."
)

// Response is the outcome of one remote operation.
type Response[T any] struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
	Data             T                 `json:"data"`
}

func ok[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

// convertError maps a failed call onto an envelope.
func convertError[T any](err error) Response[T] {
	apiErr, isAPI := apiclient.AsAPIError(err)
	if !isAPI {
		log.Error().Err(err).Msg("Bookstore API unreachable")
		return Response[T]{Message: MsgFailure}
	}

	switch {
	case apiErr.StatusCode == http.StatusBadRequest:
		errs := apiErr.Errors
		if len(errs) == 0 && apiErr.Message != "" {
			errs = map[string]string{"": apiErr.Message}
		}
		return Response[T]{Message: MsgValidation, ValidationErrors: errs}
	case apiErr.StatusCode == http.StatusNotFound:
		return Response[T]{Message: MsgNotFound}
	case apiErr.StatusCode == http.StatusUnauthorized:
		return Response[T]{Message: MsgUnauthorized}
	case apiErr.StatusCode == http.StatusForbidden:
		return Response[T]{Message: MsgForbidden}
	case apiErr.StatusCode == http.StatusConflict:
		return Response[T]{Message: MsgConflict}
	case apiErr.StatusCode >= 200 && apiErr.StatusCode <= 299:
		return Response[T]{Success: true, Message: MsgSuccess}
	default:
		log.Warn().Int("status", apiErr.StatusCode).Str("body", apiErr.Body).Msg("Bookstore API call failed")
		return Response[T]{Message: MsgFailure}
	}
}

// base carries what every resource service needs.
type base struct {
	storage storage.LocalStorage
}

// authorize attaches the stored bearer token, if any, to ctx.
func (b base) authorize(ctx context.Context) (context.Context, error) {
	token, err := b.storage.GetItem(ctx, authstate.AccessTokenKey)
	if err != nil {
		return ctx, err
	}
	if token == "" {
		return ctx, nil
	}
	return apiclient.WithBearerToken(ctx, token), nil
}

// call runs fn with an authorized context and wraps the result.
func call[T any](ctx context.Context, b base, fn func(ctx context.Context) (T, error)) Response[T] {
	ctx, err := b.authorize(ctx)
	if err != nil {
		return convertError[T](err)
	}
	data, err := fn(ctx)
	if err != nil {
		return convertError[T](err)
	}
	return ok(data)
}
