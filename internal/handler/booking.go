package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramsehat/backend/internal/booking"
	"github.com/gramsehat/backend/pkg/model"
	"go.uber.org/zap"
)

// BookingHandler drives the appointment booking wizard
type BookingHandler struct {
	service *booking.Service
	logger  *zap.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(service *booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		logger:  logger,
	}
}

type selectHospitalRequest struct {
	HospitalID int `json:"hospital_id" binding:"required"`
}

type selectDoctorRequest struct {
	DoctorID int `json:"doctor_id" binding:"required"`
}

type selectTimeSlotRequest struct {
	TimeSlot string `json:"time_slot" binding:"required"`
}

type confirmRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method" binding:"required"`
}

// CreateBooking starts a new wizard session
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	view, err := h.service.Start(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to start booking", zap.Error(err))
		respondError(c, err, "Failed to start booking")
		return
	}

	c.JSON(http.StatusCreated, view)
}

// GetBooking returns the current step of a session
func (h *BookingHandler) GetBooking(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load booking")
		return
	}

	c.JSON(http.StatusOK, view)
}

// SelectHospital sets the hospital of a session
func (h *BookingHandler) SelectHospital(c *gin.Context) {
	var req selectHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body", err)
		return
	}

	view, err := h.service.SelectHospital(c.Request.Context(), c.Param("id"), req.HospitalID)
	if err != nil {
		respondError(c, err, "Failed to select hospital")
		return
	}

	c.JSON(http.StatusOK, view)
}

// SelectDoctor sets the doctor of a session
func (h *BookingHandler) SelectDoctor(c *gin.Context) {
	var req selectDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body", err)
		return
	}

	view, err := h.service.SelectDoctor(c.Request.Context(), c.Param("id"), req.DoctorID)
	if err != nil {
		respondError(c, err, "Failed to select doctor")
		return
	}

	c.JSON(http.StatusOK, view)
}

// SelectTimeSlot sets the time slot of a session
func (h *BookingHandler) SelectTimeSlot(c *gin.Context) {
	var req selectTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body", err)
		return
	}

	view, err := h.service.SelectTimeSlot(c.Request.Context(), c.Param("id"), req.TimeSlot)
	if err != nil {
		respondError(c, err, "Failed to select time slot")
		return
	}

	c.JSON(http.StatusOK, view)
}

// Advance moves the session to the next step
func (h *BookingHandler) Advance(c *gin.Context) {
	view, err := h.service.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Cannot continue to the next step")
		return
	}

	c.JSON(http.StatusOK, view)
}

// Confirm books the appointment with the chosen payment method
func (h *BookingHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body", err)
		return
	}

	appointment, err := h.service.Confirm(c.Request.Context(), c.Param("id"), req.PaymentMethod)
	if err != nil {
		respondError(c, err, "Failed to confirm booking")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetUpcoming lists upcoming appointments
func (h *BookingHandler) GetUpcoming(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Upcoming())
}
