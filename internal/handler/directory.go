package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramsehat/backend/internal/directory"
	"github.com/gramsehat/backend/internal/pdf"
	"go.uber.org/zap"
)

// DirectoryHandler serves the hospital, doctor and catalogue lookups
type DirectoryHandler struct {
	dir     *directory.Directory
	catalog *directory.Catalog
	reports *pdf.PDFGenerator
	logger  *zap.Logger
}

// NewDirectoryHandler creates a new DirectoryHandler
func NewDirectoryHandler(dir *directory.Directory, catalog *directory.Catalog, reports *pdf.PDFGenerator, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		dir:     dir,
		catalog: catalog,
		reports: reports,
		logger:  logger,
	}
}

// GetHospitals lists hospitals
func (h *DirectoryHandler) GetHospitals(c *gin.Context) {
	c.JSON(http.StatusOK, h.dir.Hospitals())
}

// GetHospitalDoctors lists the doctors of a hospital. Hospitals without doctors yield an empty list.
func (h *DirectoryHandler) GetHospitalDoctors(c *gin.Context) {
	hospitalID, ok := intParam(c, "id")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.dir.DoctorsFor(hospitalID))
}

// GetTimeSlots lists the bookable time slots
func (h *DirectoryHandler) GetTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, h.dir.TimeSlots())
}

// GetMedicines searches medicines at nearby pharmacies
func (h *DirectoryHandler) GetMedicines(c *gin.Context) {
	filter, ok := directory.ParseMedicineFilter(c.Query("filter"))
	if !ok {
		respondValidation(c, "Invalid filter, expected nearest, lowest_price or in_stock", nil)
		return
	}

	results := h.catalog.SearchMedicines(c.Query("q"), filter)

	h.logger.Debug("medicine search",
		zap.String("query", c.Query("q")),
		zap.String("filter", string(filter)),
		zap.Int("count", len(results)),
	)

	c.JSON(http.StatusOK, results)
}

// GetEmergency returns the emergency numbers and nearest hospital
func (h *DirectoryHandler) GetEmergency(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"contacts":         h.catalog.EmergencyContacts(),
		"nearest_hospital": h.catalog.NearestHospital(),
	})
}

// GetLabReport returns the sample lab report with its status summary
func (h *DirectoryHandler) GetLabReport(c *gin.Context) {
	report := h.catalog.LabReport()
	c.JSON(http.StatusOK, gin.H{
		"report":  report,
		"summary": report.Summary(),
	})
}

// DownloadLabReport renders the lab report as a PDF attachment
func (h *DirectoryHandler) DownloadLabReport(c *gin.Context) {
	report := h.catalog.LabReport()

	data, err := h.reports.LabReport(report)
	if err != nil {
		respondError(c, err, "Failed to generate lab report")
		return
	}

	sendPDF(c, "lab-report-"+report.Patient.PatientID+".pdf", data)
}
