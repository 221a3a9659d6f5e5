package http

import (
	"errors"
	"net/http"

	"orderflow/internal/adapters/in/http/api"
	"orderflow/internal/core/application/authz"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, commands.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrTransitionNotAllowed), errors.Is(err, order.ErrAlreadyFinished):
		return http.StatusConflict
	case errors.Is(err, authz.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an api.Error. Internal errors are logged and hidden from
// the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}
	return writeError(ctx, code, message)
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, api.Error{Code: code, Message: message})
}

// ErrorHandler renders errors that escape the handlers, such as routing and
// binding failures, in the api.Error shape.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = writeError(ctx, code, message)
}
