package directory

import (
	"sort"
	"strings"

	"github.com/gramsehat/backend/pkg/model"
)

// MedicineFilter selects the ordering/filtering of a medicine search
type MedicineFilter string

const (
	FilterNearest     MedicineFilter = "nearest"
	FilterLowestPrice MedicineFilter = "lowest_price"
	FilterInStock     MedicineFilter = "in_stock"
)

// ParseMedicineFilter maps a query value to a filter, defaulting to nearest
func ParseMedicineFilter(s string) (MedicineFilter, bool) {
	switch MedicineFilter(s) {
	case "", FilterNearest:
		return FilterNearest, true
	case FilterLowestPrice:
		return FilterLowestPrice, true
	case FilterInStock:
		return FilterInStock, true
	}
	return "", false
}

// Catalog holds the static medicine, emergency and lab report data
type Catalog struct {
	medicines []model.Medicine
}

// NewCatalog creates a Catalog with the built-in data
func NewCatalog() *Catalog {
	return &Catalog{medicines: defaultMedicines()}
}

// SearchMedicines matches query against name, generic name and alternatives
func (c *Catalog) SearchMedicines(query string, filter MedicineFilter) []model.Medicine {
	q := strings.ToLower(strings.TrimSpace(query))

	results := make([]model.Medicine, 0, len(c.medicines))
	for _, med := range c.medicines {
		if filter == FilterInStock && !med.InStock {
			continue
		}
		if q == "" || medicineMatches(med, q) {
			results = append(results, med)
		}
	}

	switch filter {
	case FilterLowestPrice:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Price < results[j].Price })
	default:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	}

	return results
}

func medicineMatches(med model.Medicine, q string) bool {
	if strings.Contains(strings.ToLower(med.Name), q) || strings.Contains(strings.ToLower(med.GenericName), q) {
		return true
	}
	for _, alt := range med.Alternatives {
		if strings.Contains(strings.ToLower(alt), q) {
			return true
		}
	}
	return false
}

// EmergencyContacts returns the national emergency numbers
func (c *Catalog) EmergencyContacts() []model.EmergencyContact {
	return []model.EmergencyContact{
		{Key: "ambulance", Title: "Ambulance", Description: "Emergency Medical Services", Number: "108"},
		{Key: "police", Title: "Police", Description: "Emergency Police Services", Number: "100"},
		{Key: "fireBrigade", Title: "Fire Brigade", Description: "Fire Emergency Services", Number: "101"},
	}
}

// NearestHospital returns the hospital shown on the emergency screen
func (c *Catalog) NearestHospital() model.NearbyHospital {
	return model.NearbyHospital{
		Name:     "Civil Hospital Nabha",
		Location: "Civil Lines, Nabha, Punjab",
		Distance: "2.1 km",
		Rating:   "4.2",
	}
}

// LabReport returns the sample blood report
func (c *Catalog) LabReport() model.LabReport {
	return model.LabReport{
		Patient: model.PatientInfo{
			Name:           "John Doe",
			Age:            35,
			Gender:         "Male",
			PatientID:      "NH2024001",
			ReportDate:     "2024-09-12",
			CollectionDate: "2024-09-11",
		},
		Sections: []model.LabSection{
			{
				Name: "Complete Blood Count",
				Parameters: []model.LabParameter{
					{Name: "Hemoglobin", Value: 14.5, Unit: "g/dL", Range: "13.5-17.5", Status: "Normal"},
					{Name: "RBC", Value: 4.8, Unit: "million/µL", Range: "4.5-5.9", Status: "Normal"},
					{Name: "WBC", Value: 7200, Unit: "/µL", Range: "4000-11000", Status: "Normal"},
					{Name: "Platelets", Value: 285000, Unit: "/µL", Range: "150000-450000", Status: "Normal"},
					{Name: "Hematocrit", Value: 42.5, Unit: "%", Range: "41-50", Status: "Normal"},
				},
			},
			{
				Name: "Lipid Profile",
				Parameters: []model.LabParameter{
					{Name: "Total Cholesterol", Value: 185, Unit: "mg/dL", Range: "<200", Status: "Normal"},
					{Name: "HDL", Value: 55, Unit: "mg/dL", Range: ">40", Status: "Normal"},
					{Name: "LDL", Value: 115, Unit: "mg/dL", Range: "<100", Status: "Borderline"},
					{Name: "Triglycerides", Value: 135, Unit: "mg/dL", Range: "<150", Status: "Normal"},
				},
			},
			{
				Name: "Liver Function",
				Parameters: []model.LabParameter{
					{Name: "ALT", Value: 28, Unit: "U/L", Range: "7-56", Status: "Normal"},
					{Name: "AST", Value: 32, Unit: "U/L", Range: "10-40", Status: "Normal"},
					{Name: "Bilirubin", Value: 0.8, Unit: "mg/dL", Range: "0.3-1.2", Status: "Normal"},
				},
			},
			{
				Name: "Kidney Function",
				Parameters: []model.LabParameter{
					{Name: "Creatinine", Value: 0.9, Unit: "mg/dL", Range: "0.6-1.2", Status: "Normal"},
					{Name: "BUN", Value: 15, Unit: "mg/dL", Range: "7-20", Status: "Normal"},
					{Name: "Uric Acid", Value: 5.2, Unit: "mg/dL", Range: "3.4-7.0", Status: "Normal"},
				},
			},
		},
	}
}

func defaultMedicines() []model.Medicine {
	return []model.Medicine{
		{
			ID:           1,
			Name:         "Paracetamol 500mg",
			GenericName:  "Acetaminophen",
			Price:        15,
			InStock:      true,
			Pharmacy:     "MedPlus Pharmacy",
			Distance:     0.8,
			Alternatives: []string{"Crocin", "Dolo 650"},
		},
		{
			ID:           2,
			Name:         "Amoxicillin 250mg",
			GenericName:  "Amoxicillin",
			Price:        45,
			InStock:      false,
			Pharmacy:     "Apollo Pharmacy",
			Distance:     1.2,
			Alternatives: []string{"Augmentin", "Clamp"},
		},
		{
			ID:           3,
			Name:         "Cetirizine 10mg",
			GenericName:  "Cetirizine",
			Price:        12,
			InStock:      true,
			Pharmacy:     "Jan Aushadhi Kendra",
			Distance:     2.4,
			Alternatives: []string{"Okacet", "Alerid"},
		},
		{
			ID:           4,
			Name:         "ORS Sachet",
			GenericName:  "Oral Rehydration Salts",
			Price:        20,
			InStock:      true,
			Pharmacy:     "MedPlus Pharmacy",
			Distance:     0.8,
			Alternatives: []string{"Electral"},
		},
	}
}
