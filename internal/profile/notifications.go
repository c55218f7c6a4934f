package profile

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gramsehat/backend/pkg/model"
	"go.uber.org/zap"
)

// ErrUnknownChannel is returned for notification channels that do not exist
var ErrUnknownChannel = errors.New("unknown notification channel")

// Notification channel names, as used in the JSON form of the preferences
const (
	ChannelSMS          = "sms"
	ChannelWhatsApp     = "whatsapp"
	ChannelInApp        = "in_app"
	ChannelAppointments = "appointments"
	ChannelMedicines    = "medicines"
	ChannelVaccinations = "vaccinations"
)

// DefaultNotifications has every alert on except vaccinations
func DefaultNotifications() model.NotificationPreferences {
	return model.NotificationPreferences{
		SMS:          true,
		WhatsApp:     true,
		InApp:        true,
		Appointments: true,
		Medicines:    true,
		Vaccinations: false,
	}
}

// Notifications holds the alert toggles. They live in memory only; the
// language is the one persisted setting.
type Notifications struct {
	logger *zap.Logger

	mu    sync.RWMutex
	prefs model.NotificationPreferences
}

// NewNotifications creates Notifications with the default toggles
func NewNotifications(logger *zap.Logger) *Notifications {
	return &Notifications{
		logger: logger,
		prefs:  DefaultNotifications(),
	}
}

// Get returns the current toggles
func (n *Notifications) Get() model.NotificationPreferences {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.prefs
}

// Update applies the given channel values. Nothing changes when any channel is unknown.
func (n *Notifications) Update(changes map[string]bool) (model.NotificationPreferences, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	next := n.prefs
	for _, name := range sortedKeys(changes) {
		field := channel(&next, name)
		if field == nil {
			return n.prefs, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
		}
		*field = changes[name]
	}
	n.prefs = next

	n.logger.Info("notification preferences updated", zap.Int("changed", len(changes)))
	return n.prefs, nil
}

// Toggle flips one channel
func (n *Notifications) Toggle(name string) (model.NotificationPreferences, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	field := channel(&n.prefs, name)
	if field == nil {
		return n.prefs, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	*field = !*field

	n.logger.Info("notification toggled",
		zap.String("channel", name),
		zap.Bool("enabled", *field),
	)
	return n.prefs, nil
}

func channel(p *model.NotificationPreferences, name string) *bool {
	switch name {
	case ChannelSMS:
		return &p.SMS
	case ChannelWhatsApp:
		return &p.WhatsApp
	case ChannelInApp:
		return &p.InApp
	case ChannelAppointments:
		return &p.Appointments
	case ChannelMedicines:
		return &p.Medicines
	case ChannelVaccinations:
		return &p.Vaccinations
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
