package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewNotFoundError("Experience", "x"), http.StatusNotFound},
		{domain.NewValidationError("bad"), http.StatusUnprocessableEntity},
		{domain.NewConflictError("race"), http.StatusConflict},
		{domain.NewInvalidStateError("open", "confirmed"), http.StatusConflict},
		{domain.NewUnavailableError("down", nil), http.StatusBadGateway},
		{domain.NewRejectedError("sold out"), http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", domain.NewNotFoundError("Experience", "x")), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), tt.err.Error())
	}
}

func TestPaginated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Paginated(c, []string{"a", "b"}, 5, 1, 2)

	require.Equal(t, http.StatusOK, w.Code)
	var body PaginatedEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, PageMeta{Page: 1, Limit: 2, Total: 5, TotalPages: 3}, body.Meta)
}

func TestError_UsesDomainMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, domain.NewValidationError("full name is required"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"full name is required"}`, w.Body.String())
}
