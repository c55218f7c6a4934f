package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gramsehat/backend/internal/audit"
	"github.com/gramsehat/backend/internal/booking"
	"github.com/gramsehat/backend/internal/chat"
	"github.com/gramsehat/backend/internal/profile"
	"github.com/gramsehat/backend/internal/records"
	"github.com/gramsehat/backend/internal/settings"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodePicker           = "PICKER_ERROR"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// Translator resolves localized strings
type Translator interface {
	T(lang, key, fallback string) string
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// errorStatus maps a domain error to its HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, chat.ErrConversationNotFound),
		errors.Is(err, records.ErrMemberNotFound),
		errors.Is(err, records.ErrRecordNotFound):
		return http.StatusNotFound, CodeNotFound

	case errors.Is(err, booking.ErrUnknownHospital),
		errors.Is(err, booking.ErrUnknownDoctor),
		errors.Is(err, booking.ErrUnknownTimeSlot),
		errors.Is(err, booking.ErrUnknownPayment),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, records.ErrUnknownSource),
		errors.Is(err, settings.ErrUnsupportedLanguage),
		errors.Is(err, profile.ErrUnknownChannel):
		return http.StatusBadRequest, CodeValidation

	case errors.Is(err, booking.ErrNoHospitalSelected),
		errors.Is(err, booking.ErrSelectionMissing),
		errors.Is(err, booking.ErrAlreadyAtConfirm),
		errors.Is(err, booking.ErrNotAtConfirm),
		errors.Is(err, booking.ErrBookingClosed),
		errors.Is(err, chat.ErrResponseInFlight):
		return http.StatusConflict, CodeConflict

	case errors.Is(err, records.ErrPermissionDenied):
		return http.StatusForbidden, CodePermissionDenied

	case errors.Is(err, records.ErrPickerFailed):
		return http.StatusUnprocessableEntity, CodePicker

	case errors.Is(err, audit.ErrNoDatabase):
		return http.StatusServiceUnavailable, CodeUnavailable

	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError writes err as an ErrorResponse. Internal errors are attached to
// the gin context so the error logging middleware records them.
func respondError(c *gin.Context, err error, message string) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: message,
		Details: stringPtr(err.Error()),
	})
}

// respondValidation writes a VALIDATION_ERROR response
func respondValidation(c *gin.Context, message string, err error) {
	resp := ErrorResponse{
		Code:    CodeValidation,
		Message: message,
	}
	if err != nil {
		resp.Details = stringPtr(err.Error())
	}
	c.JSON(http.StatusBadRequest, resp)
}

// intParam parses a positive integer path parameter
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		respondValidation(c, "Invalid "+name, err)
		return 0, false
	}
	return v, true
}

// sendPDF writes data as a downloadable PDF
func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
