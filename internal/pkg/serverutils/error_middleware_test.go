package serverutils

import (
	"net/http/httptest"
	"testing"

	"ai-coursekb-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/", handler)
	return app
}

func TestErrorKindsMapToStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperror.Validation("bad weight"), fiber.StatusBadRequest},
		{"not found", apperror.NotFound("no such session"), fiber.StatusNotFound},
		{"context too large", apperror.Wrap(apperror.KindContextTooLarge, "too much", nil), fiber.StatusRequestEntityTooLarge},
		{"generation timeout", apperror.Wrap(apperror.KindGenerationTimeout, "slow model", nil), fiber.StatusGatewayTimeout},
		{"rate limited", apperror.Wrap(apperror.KindGenerationRateLimited, "quota", nil), fiber.StatusTooManyRequests},
		{"internal", apperror.Internal("boom", nil), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(func(ctx *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestFiberErrorsPassThrough(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return fiber.ErrUnauthorized
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSuccessfulHandlersAreUntouched(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", "data"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
