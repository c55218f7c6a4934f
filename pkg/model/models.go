package model

// Hospital represents a facility that can be picked in the booking wizard
type Hospital struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Distance    string  `json:"distance"`
	Type        string  `json:"type"`   // Government, Private
	Status      string  `json:"status"` // Open, Closed
	DoctorCount int     `json:"doctor_count"`
	Rating      float64 `json:"rating"`
}

// ConsultationMode represents how a doctor sees patients
type ConsultationMode string

const (
	ConsultationVideo    ConsultationMode = "video"
	ConsultationInPerson ConsultationMode = "in_person"
	ConsultationBoth     ConsultationMode = "both"
)

// Doctor represents a doctor attached to a hospital
type Doctor struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Specialty        string           `json:"specialty"`
	ConsultationMode ConsultationMode `json:"consultation_mode"`
	Available        bool             `json:"available"`
}

// BookingStep represents the position of the booking wizard
type BookingStep int

const (
	StepSelectHospital BookingStep = 1
	StepSelectDoctor   BookingStep = 2
	StepSelectTime     BookingStep = 3
	StepConfirm        BookingStep = 4
)

// String returns the wire name of the step
func (s BookingStep) String() string {
	switch s {
	case StepSelectHospital:
		return "select_hospital"
	case StepSelectDoctor:
		return "select_doctor"
	case StepSelectTime:
		return "select_time"
	case StepConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// BookingState is the serialisable state of one booking wizard session.
// Selections are held as ids into the static directory.
type BookingState struct {
	SessionID        string      `json:"session_id"`
	Step             BookingStep `json:"step"`
	SelectedHospital *int        `json:"selected_hospital,omitempty"`
	SelectedDoctor   *int        `json:"selected_doctor,omitempty"`
	SelectedTimeSlot *string     `json:"selected_time_slot,omitempty"`
	Closed           bool        `json:"closed"`
}

// PaymentMethod represents how a confirmed booking will be paid
type PaymentMethod string

const (
	PaymentUPI        PaymentMethod = "upi"
	PaymentAtHospital PaymentMethod = "at_hospital"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentConfirmed AppointmentStatus = "confirmed"
)

// Appointment represents a booked or upcoming appointment
type Appointment struct {
	ID            string            `json:"id"`
	DoctorName    string            `json:"doctor_name"`
	Hospital      string            `json:"hospital"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Type          string            `json:"type"`
	Avatar        string            `json:"avatar,omitempty"`
	PaymentMethod PaymentMethod     `json:"payment_method,omitempty"`
	Status        AppointmentStatus `json:"status"`
}

// Sender represents the author of a chat message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage represents one entry of a Sahayak conversation
type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// FamilyMember represents a person whose records are kept under one account
type FamilyMember struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Age      int    `json:"age"`
	Avatar   string `json:"avatar"`
}

// HealthRecord represents a record card on the records screen
type HealthRecord struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Subtype     *string `json:"subtype,omitempty"`
	Doctor      *string `json:"doctor,omitempty"`
	Hospital    *string `json:"hospital,omitempty"`
	Date        string  `json:"date"` // dd/mm/yyyy
	Icon        string  `json:"icon"`
	IconColor   string  `json:"icon_color"`
	DocumentURI *string `json:"document_uri,omitempty"`
}

// MemberStats is the per-member counter aggregate shown above the records list.
// Prescriptions counts uploads regardless of record type.
type MemberStats struct {
	Prescriptions int `json:"prescriptions"`
	LabReports    int `json:"lab_reports"`
	Visits        int `json:"visits"`
}

// Medicine represents a medicine available at a nearby pharmacy
type Medicine struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	GenericName  string   `json:"generic_name"`
	Price        int      `json:"price"` // rupees
	InStock      bool     `json:"in_stock"`
	Pharmacy     string   `json:"pharmacy"`
	Distance     float64  `json:"distance"` // km
	Alternatives []string `json:"alternatives"`
}

// EmergencyContact represents a dialable emergency service
type EmergencyContact struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Number      string `json:"number"`
}

// NearbyHospital represents the nearest hospital shown on the emergency screen
type NearbyHospital struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Distance string `json:"distance"`
	Rating   string `json:"rating"`
}

// LabParameter represents one measured value of a lab report
type LabParameter struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Range  string  `json:"range"`
	Status string  `json:"status"` // Normal, Borderline
}

// LabSection groups parameters of one panel
type LabSection struct {
	Name       string         `json:"name"`
	Parameters []LabParameter `json:"parameters"`
}

// PatientInfo holds the header of a lab report
type PatientInfo struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	PatientID      string `json:"patient_id"`
	ReportDate     string `json:"report_date"`
	CollectionDate string `json:"collection_date"`
}

// LabReport represents a full lab report
type LabReport struct {
	Patient  PatientInfo  `json:"patient"`
	Sections []LabSection `json:"sections"`
}

// Summary counts parameters by status
func (r LabReport) Summary() map[string]int {
	summary := make(map[string]int)
	for _, section := range r.Sections {
		for _, p := range section.Parameters {
			summary[p.Status]++
		}
	}
	return summary
}

// AccountHolderID is the family member who owns the account and books appointments
const AccountHolderID = 1

// UserProfile is the account holder shown on the profile screen
type UserProfile struct {
	Name       string          `json:"name"`
	Age        int             `json:"age"`
	Location   string          `json:"location"`
	AbhaID     string          `json:"abha_id"`
	AbhaStatus string          `json:"abha_status"`
	Phone      string          `json:"phone"`
	Family     []ProfileMember `json:"family"`
}

// ProfileMember is a family member linked to the account
type ProfileMember struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Status   string `json:"status"`
}

// SchemeStatus is the enrolment state of a government scheme
type SchemeStatus string

const (
	SchemeActive   SchemeStatus = "active"
	SchemeLinked   SchemeStatus = "linked"
	SchemeEligible SchemeStatus = "eligible"
)

// GovernmentScheme represents a health scheme the account holder is enrolled in or eligible for
type GovernmentScheme struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      SchemeStatus `json:"status"`
	StatusLabel string       `json:"status_label"`
}

// SupportContact is a way to reach the helpline
type SupportContact struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	URI      string `json:"uri"`
}

// NotificationPreferences holds the alert toggles of the profile screen
type NotificationPreferences struct {
	SMS          bool `json:"sms"`
	WhatsApp     bool `json:"whatsapp"`
	InApp        bool `json:"in_app"`
	Appointments bool `json:"appointments"`
	Medicines    bool `json:"medicines"`
	Vaccinations bool `json:"vaccinations"`
}
