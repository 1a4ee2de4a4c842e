package serverutils

import (
	"context"
	"errors"

	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/executor"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error returned by a handler to an HTTP status and a
// message that is safe to show to the client.
func StatusFor(err error) (int, string) {
	var (
		fiberErr      *fiber.Error
		validationErr *ValidationError
	)
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.Is(err, executor.ErrEmptySession):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, rag.ErrTemplateNotFound):
		return fiber.StatusInternalServerError, "prompt configuration error"
	case errors.Is(err, rag.ErrRetrieval):
		return fiber.StatusBadGateway, "document search is unavailable"
	case errors.Is(err, rag.ErrCompletion):
		return fiber.StatusBadGateway, "language model is unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "request timed out"
	case errors.Is(err, context.Canceled):
		return fiber.StatusRequestTimeout, "request cancelled"
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

// NewErrorHandler builds the fiber.Config ErrorHandler.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code, message := StatusFor(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": code,
				"error":  err,
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// ErrorHandlerMiddleware converts errors from downstream handlers in place,
// so middleware registered before it sees the final status.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := NewErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}
