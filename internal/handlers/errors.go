package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// errorStatus maps a service error to its HTTP status. Unknown errors are 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrStorageFailure):
		return http.StatusInternalServerError
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrSelfApproval):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmptyBatch), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, apperrors.ErrNotApproved), errors.Is(err, apperrors.ErrTotalsMismatch),
		errors.Is(err, apperrors.ErrMissingField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidation), isDecodeError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func isDecodeError(err error) bool {
	for _, target := range []error{
		apperrors.ErrEmptyFile, apperrors.ErrMalformedHeader, apperrors.ErrRecordCountMismatch,
		apperrors.ErrMalformedRecord, apperrors.ErrInvalidAmount, apperrors.ErrTotalAmountMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// errorDetails extracts the structured part of err for clients.
func errorDetails(err error) gin.H {
	var (
		validationErr *apperrors.ValidationError
		stateErr      *apperrors.InvalidStateError
		totalsErr     *apperrors.TotalsMismatchError
		missingErr    *apperrors.MissingFieldError
		countErr      *apperrors.RecordCountMismatchError
		recordErr     *apperrors.MalformedRecordError
		amountErr     *apperrors.InvalidAmountError
		sumErr        *apperrors.TotalAmountMismatchError
	)
	switch {
	case errors.As(err, &validationErr):
		return gin.H{"field": validationErr.Field}
	case errors.As(err, &stateErr):
		return gin.H{"operation": stateErr.Operation, "status": stateErr.Status}
	case errors.As(err, &totalsErr):
		return gin.H{
			"storedAmount":   totalsErr.Stored.StringFixed(2),
			"computedAmount": totalsErr.Computed.StringFixed(2),
			"difference":     totalsErr.Difference.StringFixed(2),
			"storedCount":    totalsErr.StoredCount,
			"computedCount":  totalsErr.ComputedCount,
		}
	case errors.As(err, &missingErr):
		return gin.H{"sequenceNumber": missingErr.Sequence, "field": missingErr.Field}
	case errors.As(err, &countErr):
		return gin.H{"declared": countErr.Declared, "actual": countErr.Actual}
	case errors.As(err, &recordErr):
		return gin.H{"line": recordErr.Line}
	case errors.As(err, &amountErr):
		return gin.H{"line": amountErr.Line, "value": amountErr.Value}
	case errors.As(err, &sumErr):
		return gin.H{"headerAmount": sumErr.Header.StringFixed(2), "computedAmount": sumErr.Computed.StringFixed(2)}
	}
	return nil
}

// respondError writes err as JSON. Server errors never leak their cause.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	body := gin.H{"error": err.Error()}
	if details := errorDetails(err); details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// respondBindError reports a request that failed binding or validator tags.
func respondBindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(gin.H, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what, "details": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}
