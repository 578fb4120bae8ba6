package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/vixducis/pour-decisions/internal/money"
	"github.com/vixducis/pour-decisions/internal/storage"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks the struct tags of a request message.
func validateRequest(procedure string, msg any) error {
	if err := validate.Struct(msg); err != nil {
		slog.Warn("Invalid request", "procedure", procedure, "error", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// toConnectError maps domain and storage errors to Connect codes.
// Anything unexpected is reported as Internal and logged.
func toConnectError(procedure string, err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, money.ErrInvalidAmount):
		code = connect.CodeInvalidArgument
	case errors.Is(err, storage.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, money.ErrOverflow):
		code = connect.CodeOutOfRange
	case errors.Is(err, storage.ErrForeignRecord), errors.Is(err, storage.ErrInUse):
		code = connect.CodeFailedPrecondition
	default:
		slog.Error("Request failed", "procedure", procedure, "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
	slog.Warn("Request rejected", "procedure", procedure, "code", code, "error", err)
	return connect.NewError(code, err)
}
