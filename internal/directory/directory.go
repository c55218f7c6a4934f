package directory

import (
	"github.com/gramsehat/backend/pkg/model"
)

// DoctorIndex maps a hospital id to the doctors practising there
type DoctorIndex map[int][]model.Doctor

// Lookup returns the doctors of a hospital. An unknown hospital yields an empty list.
func (idx DoctorIndex) Lookup(hospitalID int) []model.Doctor {
	doctors, ok := idx[hospitalID]
	if !ok {
		return []model.Doctor{}
	}
	out := make([]model.Doctor, len(doctors))
	copy(out, doctors)
	return out
}

// Directory is the static catalogue of hospitals, doctors and time slots
type Directory struct {
	hospitals []model.Hospital
	doctors   DoctorIndex
	slots     []string
}

// New creates a Directory with the built-in catalogue
func New() *Directory {
	return NewWith(defaultHospitals(), defaultDoctors(), defaultTimeSlots())
}

// NewWith creates a Directory over the given data
func NewWith(hospitals []model.Hospital, doctors DoctorIndex, slots []string) *Directory {
	if doctors == nil {
		doctors = DoctorIndex{}
	}
	return &Directory{
		hospitals: hospitals,
		doctors:   doctors,
		slots:     slots,
	}
}

// Hospitals returns all hospitals
func (d *Directory) Hospitals() []model.Hospital {
	out := make([]model.Hospital, len(d.hospitals))
	copy(out, d.hospitals)
	return out
}

// Hospital returns a hospital by its ID
func (d *Directory) Hospital(id int) (model.Hospital, bool) {
	for _, h := range d.hospitals {
		if h.ID == id {
			return h, true
		}
	}
	return model.Hospital{}, false
}

// DoctorsFor returns the doctors of a hospital, empty for an unknown hospital
func (d *Directory) DoctorsFor(hospitalID int) []model.Doctor {
	return d.doctors.Lookup(hospitalID)
}

// Doctor returns a doctor of the given hospital
func (d *Directory) Doctor(hospitalID, doctorID int) (model.Doctor, bool) {
	for _, doc := range d.doctors[hospitalID] {
		if doc.ID == doctorID {
			return doc, true
		}
	}
	return model.Doctor{}, false
}

// TimeSlots returns the bookable slots. They do not depend on hospital or doctor.
func (d *Directory) TimeSlots() []string {
	out := make([]string, len(d.slots))
	copy(out, d.slots)
	return out
}

// HasTimeSlot reports whether slot is one of the bookable slots
func (d *Directory) HasTimeSlot(slot string) bool {
	for _, s := range d.slots {
		if s == slot {
			return true
		}
	}
	return false
}

func defaultHospitals() []model.Hospital {
	return []model.Hospital{
		{ID: 1, Name: "Civil Hospital Nabha", Distance: "2.5 km", Type: "Government", Status: "Open", DoctorCount: 15, Rating: 4.2},
		{ID: 2, Name: "Max Hospital", Distance: "3.8 km", Type: "Private", Status: "Open", DoctorCount: 25, Rating: 4.5},
		{ID: 3, Name: "Apollo Clinic", Distance: "1.2 km", Type: "Private", Status: "Closed", DoctorCount: 8, Rating: 4.1},
	}
}

func defaultDoctors() DoctorIndex {
	return DoctorIndex{
		1: {
			{ID: 101, Name: "Dr. Rajesh Kumar", Specialty: "General Medicine", ConsultationMode: model.ConsultationBoth, Available: true},
			{ID: 102, Name: "Dr. Kavita Sharma", Specialty: "Gynaecology", ConsultationMode: model.ConsultationInPerson, Available: true},
			{ID: 103, Name: "Dr. Harpreet Gill", Specialty: "Orthopaedics", ConsultationMode: model.ConsultationInPerson, Available: false},
		},
		2: {
			{ID: 201, Name: "Dr. Neha Gupta", Specialty: "Cardiology", ConsultationMode: model.ConsultationBoth, Available: true},
			{ID: 202, Name: "Dr. Amit Singh", Specialty: "Endocrinology", ConsultationMode: model.ConsultationVideo, Available: true},
		},
		3: {
			{ID: 301, Name: "Dr. Priya Sharma", Specialty: "Paediatrics", ConsultationMode: model.ConsultationVideo, Available: false},
		},
	}
}

func defaultTimeSlots() []string {
	return []string{
		"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM",
		"11:00 AM", "11:30 AM", "02:00 PM", "02:30 PM",
		"03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM",
	}
}
