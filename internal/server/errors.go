package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	overviewsvc "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/billingoverview/service"
	customerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	ledgerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/domain"
	readingdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	tariffdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Shortfall int64             `json:"shortfall,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrLockBusy       = errors.New("operation_in_progress")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var shortErr *ledgerdomain.InsufficientBalanceError
	if errors.As(err, &shortErr) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:      "insufficient_balance",
			Message:   "balance does not cover the outstanding amount",
			Shortfall: shortErr.Shortfall,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrLockBusy),
		errors.Is(err, readingdomain.ErrPeriodBilled):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidStatus),
		errors.Is(err, customerdomain.ErrInvalidID):
		return true
	case errors.Is(err, readingdomain.ErrInvalidID),
		errors.Is(err, readingdomain.ErrInvalidPeriod),
		errors.Is(err, readingdomain.ErrMissingReading),
		errors.Is(err, readingdomain.ErrNegativeReading),
		errors.Is(err, readingdomain.ErrReadingDecrease):
		return true
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidStatus):
		return true
	case errors.Is(err, ledgerdomain.ErrInvalidID),
		errors.Is(err, ledgerdomain.ErrInvalidAmount),
		errors.Is(err, ledgerdomain.ErrInvalidDirection):
		return true
	case errors.Is(err, tariffdomain.ErrInvalidUsageRange),
		errors.Is(err, tariffdomain.ErrInvalidPrice),
		errors.Is(err, tariffdomain.ErrInvalidID):
		return true
	case errors.Is(err, settingsdomain.ErrInvalidAdminFee),
		errors.Is(err, settingsdomain.ErrInvalidPumpState):
		return true
	case errors.Is(err, overviewsvc.ErrInvalidYear):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, tariffdomain.ErrNotFound),
		errors.Is(err, settingsdomain.ErrNotSeeded),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "missing_meter_reading":
		return "total meter reading is required"
	case "meter_reading_decreased":
		return "meter reading cannot decrease"
	case "negative_meter_reading":
		return "meter reading cannot be negative"
	default:
		return "invalid value"
	}
}
