package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramsehat/backend/internal/i18n"
	"github.com/gramsehat/backend/internal/settings"
	"go.uber.org/zap"
)

// SettingsHandler reads and changes the app language
type SettingsHandler struct {
	service *settings.Service
	logger  *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service *settings.Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger,
	}
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

// GetLanguage returns the current language and the supported ones
func (h *SettingsHandler) GetLanguage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"language":  h.service.Language(),
		"supported": i18n.Languages,
	})
}

// UpdateLanguage switches the app language
func (h *SettingsHandler) UpdateLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body", err)
		return
	}

	if err := h.service.SetLanguage(c.Request.Context(), req.Language); err != nil {
		h.logger.Warn("failed to change language",
			zap.String("language", req.Language),
			zap.Error(err),
		)
		respondError(c, err, "Failed to change language")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language": h.service.Language(),
	})
}
