package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/library-service/internal/api/dto"
	"github.com/spec-kit/library-service/internal/observability"
	apperrors "github.com/spec-kit/library-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware is the terminal sink for every failure in the
// pipeline. Unclassified errors and anything carrying status 500 respond
// with a fixed message so internal detail never leaks; every other status
// echoes its message verbatim. The raw error is always logged first.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}

			domainErr := apperrors.ToDomainError(err)
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				// Router-level errors (404/405) keep their own status.
				domainErr = apperrors.NewDomainError("HTTP_ERROR", fiberErr.Message, fiberErr.Code)
			}
			logger.Error("request failed",
				zap.String("path", c.Path()),
				zap.String("code", domainErr.Code),
				zap.Error(domainErr),
			)
			if metrics != nil {
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
			}

			status := domainErr.HTTPStatus
			message := domainErr.Message
			if status == 0 || status == fiber.StatusInternalServerError {
				status = fiber.StatusInternalServerError
				message = "Something went wrong"
			}
			c.Status(status)
			_ = c.JSON(dto.ErrorEnvelope{StatusCode: status, Success: false, Message: message})
			err = nil
		}()
		return c.Next()
	}
}
