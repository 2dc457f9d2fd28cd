package v1

import (
	"errors"
	"net/http"

	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
)

var (
	errCleanupConfirmation    = errors.New("the confirmation for the cleanup API call was incorrect")
	errMonthNotSetInQuery     = errors.New("the month query parameter must be set")
	errTransactionIDsRequired = errors.New("the ids list must contain at least one transaction ID")
	errExportFormatInvalid    = errors.New("the format parameter must be one of 'json' or 'csv'")
	errSortInvalid            = errors.New("the sort parameter must be one of 'date' or 'amount'")
	errAnalyticsKindInvalid   = errors.New("the kind parameter must be one of 'income' or 'expense'")
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// httpErrors writes an error response with the appropriate status code
// for an error that occurred in a model or controller operation.
func httpErrors(c *gin.Context, err error) {
	c.JSON(status(err), httpError{Error: err.Error()})
}

// status translates an error that occurred in the backend to the
// appropriate HTTP status code.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
