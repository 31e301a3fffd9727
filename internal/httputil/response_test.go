package httputil_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/serviceauth/internal/errors"
	"github.com/allisson/serviceauth/internal/httputil"
)

func setupContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"NotFound", apperrors.Wrap(apperrors.ErrNotFound, "service not found"), http.StatusNotFound, "not_found"},
		{"Conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"InvalidInput", apperrors.Wrap(apperrors.ErrInvalidInput, "email: blank"), http.StatusUnprocessableEntity, "invalid_input"},
		{"Unauthorized", apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials"), http.StatusUnauthorized, "unauthorized"},
		{"Forbidden", apperrors.Wrap(apperrors.ErrForbidden, "no permission edge"), http.StatusForbidden, "forbidden"},
		{"Internal", apperrors.New("sql: connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupContext(t)

			httputil.HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.wantStatus, w.Code)

			var response httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantCode, response.Error)
		})
	}

	t.Run("Unauthorized responses share one shape", func(t *testing.T) {
		c1, w1 := setupContext(t)
		httputil.HandleErrorGin(c1, apperrors.Wrap(apperrors.ErrUnauthorized, "unknown service"), logger)

		c2, w2 := setupContext(t)
		httputil.HandleErrorGin(c2, apperrors.Wrap(apperrors.ErrUnauthorized, "bad api key"), logger)

		assert.Equal(t, w1.Body.String(), w2.Body.String())
	})

	t.Run("Internal errors do not leak details", func(t *testing.T) {
		c, w := setupContext(t)
		httputil.HandleErrorGin(c, apperrors.New("pq: duplicate key value"), logger)
		assert.NotContains(t, w.Body.String(), "pq:")
	})

	t.Run("Nil error writes nothing", func(t *testing.T) {
		c, w := setupContext(t)
		httputil.HandleErrorGin(c, nil, logger)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := setupContext(t)
	httputil.HandleBadRequestGin(c, apperrors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "bad_request", response.Error)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := setupContext(t)
	httputil.HandleValidationErrorGin(c, apperrors.New("email: must be a valid email address"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "validation_error", response.Error)
}
