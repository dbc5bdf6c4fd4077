package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/domain"
	"github.com/luxymarbre/devis-api/pkg/logger"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: estado raro", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{fmt.Errorf("%w: validada", domain.ErrInvalidState), http.StatusConflict, "INVALID_STATE"},
		{&domain.InsufficientStockError{ProductName: "Carrara", Current: decimal.NewFromInt(1), Requested: decimal.NewFromInt(5)}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{errors.New("conexión rota"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return writeError(c, logger.Nop(), err) })

		resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, reqErr)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Equal(t, tc.code, body.Code)
	}
}

func TestWriteError_NoExponeErroresInternos(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, logger.Nop(), errors.New("password=secreto"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body.Message, "secreto")
}

func TestPageFromQuery(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return c.JSON(pageFromQuery(c)) })

	cases := map[string]dto.PageRequest{
		"/":                     {Limit: 20, Offset: 0},
		"/?limit=500&offset=10": {Limit: 100, Offset: 10},
		"/?limit=-3&offset=-1":  {Limit: 20, Offset: 0},
		"/?limit=5":             {Limit: 5, Offset: 0},
	}
	for url, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil), -1)
		require.NoError(t, err)
		var got dto.PageRequest
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		resp.Body.Close()
		assert.Equal(t, want, got, url)
	}
}
