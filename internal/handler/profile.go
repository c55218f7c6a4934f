package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramsehat/backend/internal/profile"
	"go.uber.org/zap"
)

// ProfileHandler serves the profile screen: account holder, schemes,
// support contacts and notification toggles
type ProfileHandler struct {
	catalog       *profile.Catalog
	notifications *profile.Notifications
	language      func() string
	logger        *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(catalog *profile.Catalog, notifications *profile.Notifications, language func() string, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		catalog:       catalog,
		notifications: notifications,
		language:      language,
		logger:        logger,
	}
}

func (h *ProfileHandler) lang() string {
	if h.language == nil {
		return ""
	}
	return h.language()
}

// GetProfile returns the account holder with the current language and toggles
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	lang := h.lang()
	c.JSON(http.StatusOK, gin.H{
		"user":          h.catalog.User(lang),
		"language":      lang,
		"notifications": h.notifications.Get(),
	})
}

// GetNotifications returns the notification toggles
func (h *ProfileHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifications.Get())
}

// UpdateNotifications sets the channels named in the body
func (h *ProfileHandler) UpdateNotifications(c *gin.Context) {
	var changes map[string]bool
	if err := c.ShouldBindJSON(&changes); err != nil {
		respondValidation(c, "Invalid request body", err)
		return
	}
	if len(changes) == 0 {
		respondValidation(c, "No notification channels given", nil)
		return
	}

	prefs, err := h.notifications.Update(changes)
	if err != nil {
		respondError(c, err, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// ToggleNotification flips one channel
func (h *ProfileHandler) ToggleNotification(c *gin.Context) {
	prefs, err := h.notifications.Toggle(c.Param("channel"))
	if err != nil {
		respondError(c, err, "Failed to toggle notification")
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// GetSchemes lists the government health schemes
func (h *ProfileHandler) GetSchemes(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Schemes(h.lang()))
}

// GetSupport lists the helpline contacts
func (h *ProfileHandler) GetSupport(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.SupportContacts(h.lang()))
}
