package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups every handler served by the API
type Handlers struct {
	Health    *HealthHandler
	Directory *DirectoryHandler
	Booking   *BookingHandler
	Chat      *ChatHandler
	Records   *RecordsHandler
	Settings  *SettingsHandler
	Profile   *ProfileHandler
}

// RegisterRoutes mounts the API on r. sendLimit guards sending chat
// messages and may be nil.
func RegisterRoutes(r gin.IRouter, h Handlers, sendLimit gin.HandlerFunc) {
	r.GET("/health", h.Health.GetHealth)

	v1 := r.Group("/api/v1")

	// Directory
	v1.GET("/hospitals", h.Directory.GetHospitals)
	v1.GET("/hospitals/:id/doctors", h.Directory.GetHospitalDoctors)
	v1.GET("/time-slots", h.Directory.GetTimeSlots)
	v1.GET("/medicines", h.Directory.GetMedicines)
	v1.GET("/emergency", h.Directory.GetEmergency)
	v1.GET("/lab-report", h.Directory.GetLabReport)
	v1.GET("/lab-report/pdf", h.Directory.DownloadLabReport)

	// Booking wizard
	v1.POST("/bookings", h.Booking.CreateBooking)
	v1.GET("/bookings/:id", h.Booking.GetBooking)
	v1.PUT("/bookings/:id/hospital", h.Booking.SelectHospital)
	v1.PUT("/bookings/:id/doctor", h.Booking.SelectDoctor)
	v1.PUT("/bookings/:id/time-slot", h.Booking.SelectTimeSlot)
	v1.POST("/bookings/:id/advance", h.Booking.Advance)
	v1.POST("/bookings/:id/confirm", h.Booking.Confirm)
	v1.GET("/appointments/upcoming", h.Booking.GetUpcoming)

	// Sahayak
	send := []gin.HandlerFunc{h.Chat.SendMessage}
	if sendLimit != nil {
		send = append([]gin.HandlerFunc{sendLimit}, send...)
	}
	v1.POST("/chat/conversations", h.Chat.StartConversation)
	v1.GET("/chat/conversations/:id/messages", h.Chat.GetMessages)
	v1.POST("/chat/conversations/:id/messages", send...)
	v1.DELETE("/chat/conversations/:id", h.Chat.EndConversation)

	// Health records
	v1.GET("/family-members", h.Records.GetFamilyMembers)
	v1.GET("/family-members/:id/records", h.Records.GetRecords)
	v1.GET("/family-members/:id/stats", h.Records.GetStats)
	v1.POST("/family-members/:id/records", h.Records.UploadRecord)
	v1.DELETE("/family-members/:id/records/:recordId", h.Records.DeleteRecord)
	v1.GET("/family-members/:id/records/:recordId/download", h.Records.DownloadRecord)
	v1.GET("/family-members/:id/audit", h.Records.GetAuditTrail)

	// Settings
	v1.GET("/settings/language", h.Settings.GetLanguage)
	v1.PUT("/settings/language", h.Settings.UpdateLanguage)

	// Profile
	v1.GET("/profile", h.Profile.GetProfile)
	v1.GET("/profile/notifications", h.Profile.GetNotifications)
	v1.PUT("/profile/notifications", h.Profile.UpdateNotifications)
	v1.POST("/profile/notifications/:channel/toggle", h.Profile.ToggleNotification)
	v1.GET("/schemes", h.Profile.GetSchemes)
	v1.GET("/support", h.Profile.GetSupport)
}
