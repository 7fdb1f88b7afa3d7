package coffeeshopserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.temporal.io/sdk/temporal"

	catalogapp "github.com/beandock/coffeeshop-api/internal/domains/catalog/application"
	catalogports "github.com/beandock/coffeeshop-api/internal/domains/catalog/ports"
	ordersapp "github.com/beandock/coffeeshop-api/internal/domains/orders/application"
	orderdomain "github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	orderports "github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
	userapp "github.com/beandock/coffeeshop-api/internal/domains/users/application"
	userports "github.com/beandock/coffeeshop-api/internal/domains/users/ports"
	orderworkflows "github.com/beandock/coffeeshop-api/internal/durable/temporal/workflows/orders"
	apierrors "github.com/beandock/coffeeshop-api/internal/shared/errors"
)

// Per-context responders. Unmapped errors fall through to a 500 problem.
var (
	userProblems    = apierrors.NewChainedResponder("", userServiceProblem)
	catalogProblems = apierrors.NewChainedResponder("", catalogServiceProblem)
	orderProblems   = apierrors.NewChainedResponder("", workflowProblem, orderServiceProblem)
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves simple call sites while returning RFC 7807 responses.
// Binding failures surface per-field detail when the validator produced any.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if status == http.StatusBadRequest && errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = "failed " + fe.Tag() + " validation"
		}
		respondProblem(c, apierrors.NewValidationProblem(fields))
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func respondUserServiceError(c *gin.Context, err error) {
	userProblems.RespondError(c, err)
}

func respondCatalogServiceError(c *gin.Context, err error) {
	catalogProblems.RespondError(c, err)
}

func respondOrderServiceError(c *gin.Context, err error) {
	orderProblems.RespondError(c, err)
}

// userServiceProblem translates user service failures.
func userServiceProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, userapp.ErrConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, userapp.ErrAuthentication), errors.Is(err, userports.ErrSessionNotFound):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// catalogServiceProblem translates catalog service failures.
func catalogServiceProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrCategoryNameTaken):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrCategoryNotFound), errors.Is(err, catalogports.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// workflowProblem translates application errors surfaced from the Temporal
// placement workflow, which carry a type tag instead of wrapped sentinels.
func workflowProblem(err error) (apierrors.ProblemDetail, bool) {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return apierrors.ProblemDetail{}, false
	}
	switch appErr.Type() {
	case orderworkflows.OrderInvalidErrorType:
		return apierrors.ErrValidation.WithDetail(appErr.Message()), true
	case orderworkflows.OrderRejectedErrorType:
		return apierrors.NewOrderRejectedProblem(appErr.Message()), true
	}
	return apierrors.ProblemDetail{}, false
}

// orderServiceProblem translates order service failures. Stock shortfalls get
// their own problem type; every placement rejection answers 400.
func orderServiceProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, orderdomain.ErrNotCancellable),
		errors.Is(err, orderdomain.ErrTerminalStatus):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrInsufficientStock):
		return apierrors.NewOutOfStockProblem(err.Error()), true
	case errors.Is(err, ordersapp.ErrRejected):
		return apierrors.NewOrderRejectedProblem(err.Error()), true
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// parseIDParam extracts a positive int64 path parameter or responds 400.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid "+name+" path parameter"))
		return 0, false
	}
	return id, true
}

// parseQueryInt reads an optional non-negative integer query parameter.
func parseQueryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid "+name+" query parameter"))
		return 0, false
	}
	return value, true
}
