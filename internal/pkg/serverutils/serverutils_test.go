package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/executor"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"fiber error", fiber.NewError(fiber.StatusNotFound, "nope"), 404},
		{"validation", &ValidationError{Fields: map[string]string{"input": "required"}}, 400},
		{"empty session", executor.ErrEmptySession, 400},
		{"template", &rag.TemplateNotFoundError{Name: "answer"}, 500},
		{"retrieval", &rag.RetrievalError{Op: "search", Err: errors.New("x")}, 502},
		{"completion", fmt.Errorf("wrapped: %w", &rag.CompletionError{Err: errors.New("x")}), 502},
		{"deadline", context.DeadlineExceeded, 504},
		{"cancelled", context.Canceled, 408},
		{"unknown", errors.New("boom"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := StatusFor(tt.err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestUnknownErrorsDoNotLeak(t *testing.T) {
	_, msg := StatusFor(errors.New("password=hunter2"))
	assert.NotContains(t, msg, "hunter2")
}

type sample struct {
	Input     string `validate:"required"`
	SessionId string `validate:"max=3"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Input: "x"}))

	err := ValidateRequest(sample{SessionId: "toolong"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Fields["input"])
	assert.Equal(t, "max=3", ve.Fields["session_id"])
}

func decodeBody(t *testing.T, body io.Reader) Response {
	t.Helper()
	var res Response
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestErrorHandlerWritesEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger.NewNop())})
	app.Get("/", func(ctx *fiber.Ctx) error {
		return &rag.CompletionError{Provider: "ollama", Err: errors.New("connection refused")}
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	assert.Equal(t, 502, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.False(t, body.Success)
	assert.Equal(t, 502, body.Code)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", JwtMiddleware("secret"), func(ctx *fiber.Ctx) error {
		return ctx.SendString(UserID(ctx))
	})

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "other", jwt.MapClaims{"user_id": "u1"}))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("missing claim", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "secret", jwt.MapClaims{"sub": "u1"}))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "secret", jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "u1", string(b))
	})
}

func TestJwtMiddlewareDisabled(t *testing.T) {
	app := fiber.New()
	app.Get("/", JwtMiddleware(""), func(ctx *fiber.Ctx) error {
		return ctx.SendString("anon:" + UserID(ctx))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anon:", string(b))
}
