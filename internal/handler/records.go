package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gramsehat/backend/internal/audit"
	"github.com/gramsehat/backend/internal/pdf"
	"github.com/gramsehat/backend/internal/records"
	"go.uber.org/zap"
)

// RecordsHandler serves family members and their health records
type RecordsHandler struct {
	service    *records.Service
	reports    *pdf.PDFGenerator
	translator Translator
	language   func() string
	logger     *zap.Logger
}

// NewRecordsHandler creates a new RecordsHandler. Messages are localized
// with translator in the language returned by language.
func NewRecordsHandler(service *records.Service, reports *pdf.PDFGenerator, translator Translator, language func() string, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{
		service:    service,
		reports:    reports,
		translator: translator,
		language:   language,
		logger:     logger,
	}
}

// uploadRequest carries the outcome of the camera or document picker
type uploadRequest struct {
	Source string `json:"source" binding:"required"`
	// PermissionGranted defaults to true when omitted
	PermissionGranted *bool          `json:"permission_granted"`
	Canceled          bool           `json:"canceled"`
	Asset             *records.Asset `json:"asset"`
	Error             string         `json:"error"`
}

func (r uploadRequest) picker() records.ResultPicker {
	granted := r.PermissionGranted == nil || *r.PermissionGranted
	return records.ResultPicker{
		PermissionGranted: granted,
		Result: records.PickResult{
			Canceled: r.Canceled,
			Asset:    r.Asset,
		},
		Failure: r.Error,
	}
}

func (h *RecordsHandler) t(key, fallback string) string {
	lang := ""
	if h.language != nil {
		lang = h.language()
	}
	if h.translator == nil {
		return fallback
	}
	return h.translator.T(lang, key, fallback)
}

// GetFamilyMembers lists family members with their record counts
func (h *RecordsHandler) GetFamilyMembers(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.FamilyMembers())
}

// GetRecords lists a member's records. sort=date orders them newest first.
func (h *RecordsHandler) GetRecords(c *gin.Context) {
	memberID, ok := h.member(c)
	if !ok {
		return
	}

	switch c.Query("sort") {
	case "":
		c.JSON(http.StatusOK, h.service.Records(memberID))
	case "date":
		c.JSON(http.StatusOK, h.service.RecordsByDate(memberID))
	default:
		respondValidation(c, "Invalid sort, expected date", nil)
	}
}

// GetStats returns a member's record counters
func (h *RecordsHandler) GetStats(c *gin.Context) {
	memberID, ok := h.member(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.service.Stats(memberID))
}

// UploadRecord records a picked document for a member
func (h *RecordsHandler) UploadRecord(c *gin.Context) {
	memberID, ok := h.member(c)
	if !ok {
		return
	}

	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body", err)
		return
	}

	source, err := records.ParseSource(req.Source)
	if err != nil {
		respondError(c, err, "Invalid source, expected camera or document")
		return
	}

	ctx := audit.WithRequestInfo(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())

	record, err := h.service.Upload(ctx, memberID, req.picker(), source)
	if err != nil {
		respondError(c, err, h.uploadErrorMessage(err, source))
		return
	}

	if record == nil {
		c.JSON(http.StatusOK, gin.H{"canceled": true})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"record":  record,
		"stats":   h.service.Stats(memberID),
		"message": h.t("records.upload_success", "Document uploaded successfully"),
	})
}

// DeleteRecord removes one of a member's records
func (h *RecordsHandler) DeleteRecord(c *gin.Context) {
	memberID, ok := h.member(c)
	if !ok {
		return
	}

	recordID, err := strconv.ParseInt(c.Param("recordId"), 10, 64)
	if err != nil {
		respondValidation(c, "Invalid recordId", err)
		return
	}

	ctx := audit.WithRequestInfo(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())

	if err := h.service.Delete(ctx, memberID, recordID); err != nil {
		respondError(c, err, "Failed to delete record")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":   h.service.Stats(memberID),
		"message": h.t("records.delete_success", "Record deleted"),
	})
}

// DownloadRecord renders one of a member's records as a PDF attachment
func (h *RecordsHandler) DownloadRecord(c *gin.Context) {
	memberID, ok := h.member(c)
	if !ok {
		return
	}

	recordID, err := strconv.ParseInt(c.Param("recordId"), 10, 64)
	if err != nil {
		respondValidation(c, "Invalid recordId", err)
		return
	}

	record, err := h.service.Record(memberID, recordID)
	if err != nil {
		respondError(c, err, "Record not found")
		return
	}

	member, _ := h.service.Member(memberID)
	data, err := h.reports.Record(member, record)
	if err != nil {
		respondError(c, err, "Failed to generate record")
		return
	}

	sendPDF(c, "record-"+strconv.FormatInt(recordID, 10)+".pdf", data)
}

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

// GetAuditTrail lists the latest record and appointment changes of a member
func (h *RecordsHandler) GetAuditTrail(c *gin.Context) {
	memberID, ok := h.member(c)
	if !ok {
		return
	}

	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxAuditLimit {
			respondValidation(c, "Invalid limit, expected 1 to 100", err)
			return
		}
		limit = n
	}

	logs, err := h.service.AuditTrail(c.Request.Context(), memberID, limit)
	if err != nil {
		respondError(c, err, "Audit trail unavailable")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// member resolves the :id parameter to a known family member
func (h *RecordsHandler) member(c *gin.Context) (int, bool) {
	memberID, ok := intParam(c, "id")
	if !ok {
		return 0, false
	}
	if _, found := h.service.Member(memberID); !found {
		respondError(c, records.ErrMemberNotFound, "Family member not found")
		return 0, false
	}
	return memberID, true
}

func (h *RecordsHandler) uploadErrorMessage(err error, source records.Source) string {
	switch {
	case errors.Is(err, records.ErrPermissionDenied):
		return h.t("records.permission_denied", "Permission to access camera and photos is required!")
	case errors.Is(err, records.ErrPickerFailed) && source == records.SourceCamera:
		return h.t("records.camera_error", "Could not open the camera. Please try again.")
	default:
		return h.t("records.upload_error", "Could not upload the document. Please try again.")
	}
}
