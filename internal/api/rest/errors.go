package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/remixrite/remix-ledger/internal/api/shared/errors"
	"github.com/remixrite/remix-ledger/internal/logger"
)

func respondAPIError(c *gin.Context, statusCode int, apiErr *apierrors.APIError) {
	c.JSON(statusCode, apierrors.ErrorResponse{Error: apiErr})
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondAPIError(c, http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, err error) {
	if apiErr, ok := err.(*apierrors.APIError); ok {
		respondAPIError(c, http.StatusBadRequest, apiErr)
		return
	}
	respondAPIError(c, http.StatusBadRequest, apierrors.NewValidationError(err.Error()))
}

// respondServiceError maps a service error to its response; server-side failures are logged
func respondServiceError(c *gin.Context, err error, operation string) {
	status, apiErr := apierrors.FromDomainError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("operation", operation),
			zap.String("path", c.Request.URL.Path),
		)
	}
	respondAPIError(c, status, apiErr)
}
