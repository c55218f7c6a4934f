package profile

import "github.com/gramsehat/backend/pkg/model"

// Translator resolves a localized string, returning fallback when it has none
type Translator interface {
	T(lang, key, fallback string) string
}

// Catalog holds the static profile screen data. Labels are localized on read.
type Catalog struct {
	translator Translator
}

// NewCatalog creates a Catalog. translator may be nil, in which case English is used.
func NewCatalog(translator Translator) *Catalog {
	return &Catalog{translator: translator}
}

func (c *Catalog) t(lang, key, fallback string) string {
	if c.translator == nil {
		return fallback
	}
	return c.translator.T(lang, key, fallback)
}

// User returns the account holder and the linked family members
func (c *Catalog) User(lang string) model.UserProfile {
	active := c.t(lang, "profile.active", "Active")
	return model.UserProfile{
		Name:       "Shaurya Rajput",
		Age:        28,
		Location:   c.t(lang, "profile.nabha_punjab", "Nabha, Punjab"),
		AbhaID:     "ABHA-1234-5678-9012",
		AbhaStatus: c.t(lang, "profile.verified", "Verified"),
		Phone:      "+91 98765 43210",
		Family: []model.ProfileMember{
			{Name: "Rajesh Kumar", Relation: c.t(lang, "profile.father", "Father"), Status: active},
			{Name: "Sunita Devi", Relation: c.t(lang, "profile.mother", "Mother"), Status: active},
			{Name: "Priya", Relation: c.t(lang, "profile.wife", "Wife"), Status: active},
			{Name: "Aryan", Relation: c.t(lang, "profile.son", "Son"), Status: active},
		},
	}
}

// Schemes returns the government health schemes of the account holder
func (c *Catalog) Schemes(lang string) []model.GovernmentScheme {
	return []model.GovernmentScheme{
		{
			Key:         "ayushman_bharat",
			Name:        c.t(lang, "profile.ayushman_bharat", "Ayushman Bharat"),
			Description: c.t(lang, "profile.coverage", "₹5,00,000 coverage"),
			Status:      model.SchemeActive,
			StatusLabel: c.t(lang, "profile.active", "Active"),
		},
		{
			Key:         "abha_health_id",
			Name:        c.t(lang, "profile.abha_health_id", "ABHA Health ID"),
			Description: c.t(lang, "profile.digital_health_records", "Digital health records"),
			Status:      model.SchemeLinked,
			StatusLabel: c.t(lang, "profile.linked", "Linked"),
		},
		{
			Key:         "punjab_health_scheme",
			Name:        c.t(lang, "profile.punjab_health_scheme", "Punjab Health Scheme"),
			Description: c.t(lang, "profile.state_benefits", "State benefits"),
			Status:      model.SchemeEligible,
			StatusLabel: c.t(lang, "profile.eligible", "Eligible"),
		},
	}
}

// SupportContacts returns the helpline call and chat contacts
func (c *Catalog) SupportContacts(lang string) []model.SupportContact {
	return []model.SupportContact{
		{
			Key:      "call",
			Title:    c.t(lang, "profile.call_support", "Call Support"),
			Subtitle: "1800-XXX-XXXX",
			URI:      "tel:1800XXXXXXX",
		},
		{
			Key:      "whatsapp",
			Title:    c.t(lang, "profile.whatsapp", "WhatsApp"),
			Subtitle: c.t(lang, "profile.chat_with_us", "Chat with us"),
			URI:      "whatsapp://send?phone=1800XXXXXXX",
		},
	}
}
