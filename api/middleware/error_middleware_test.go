package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/nilotpaul/spaboot/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Status int    `json:"status"`
	ErrMsg string `json:"errMsg"`
}

func serveError(t *testing.T, err error) (int, errorBody) {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return err
	})

	res, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, testErr)
	defer res.Body.Close()

	var body errorBody
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))

	return res.StatusCode, body
}

func TestErrorHandler_AppError(t *testing.T) {
	status, body := serveError(t, util.NewAppError(http.StatusBadRequest, "invalid request", errors.New("boom")))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, errorBody{Status: http.StatusBadRequest, ErrMsg: "invalid request"}, body)
}

func TestErrorHandler_WrappedAppError(t *testing.T) {
	err := fmt.Errorf("handler: %w", util.NewAppError(http.StatusConflict, "conflict"))
	status, body := serveError(t, err)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", body.ErrMsg)
}

func TestErrorHandler_FiberError(t *testing.T) {
	status, body := serveError(t, fiber.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found", body.ErrMsg)
}

func TestErrorHandler_UnknownError(t *testing.T) {
	status, body := serveError(t, errors.New("open /srv/client/index.html: no such file"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "something went wrong", body.ErrMsg)
}
