package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func performRespond(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	fn(c)
	return rec
}

func TestRespond_SetsContentTypeAndInstance(t *testing.T) {
	rec := performRespond(t, func(c *gin.Context) {
		Respond(c, NewOutOfStockProblem("insufficient stock: product 7"))
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, TypeOutOfStock, problem.Type)
	require.Equal(t, "Insufficient Stock", problem.Title)
	require.Equal(t, "/api/v1/orders", problem.Instance)
}

func TestChainedResponder_MapperOrderAndFallback(t *testing.T) {
	errStock := errors.New("stock gone")
	responder := NewChainedResponder("",
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errStock) {
				return NewOutOfStockProblem(err.Error()), true
			}
			return ProblemDetail{}, false
		},
		func(err error) (ProblemDetail, bool) {
			return NewOrderRejectedProblem(err.Error()), true
		},
	)

	rec := performRespond(t, func(c *gin.Context) {
		responder.RespondError(c, errStock)
	})
	require.Contains(t, rec.Body.String(), TypeOutOfStock)

	rec = performRespond(t, func(c *gin.Context) {
		responder.RespondError(c, errors.New("anything else"))
	})
	require.Contains(t, rec.Body.String(), TypeOrderRejected)

	unmapped := NewChainedResponder("")
	rec = performRespond(t, func(c *gin.Context) {
		unmapped.RespondError(c, errors.New("boom"))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), TypeInternal)
}

func TestNewValidationProblem_CarriesFieldErrors(t *testing.T) {
	problem := NewValidationProblem(map[string]string{"Email": "failed required validation"})
	require.Equal(t, http.StatusBadRequest, problem.Status)
	require.Equal(t, map[string]string{"Email": "failed required validation"}, problem.Extensions["fields"])
}
