package records

import "github.com/gramsehat/backend/pkg/model"

func seedMembers() []model.FamilyMember {
	return []model.FamilyMember{
		{ID: 1, Name: "Shaurya", Relation: "Self", Age: 28, Avatar: "👨"},
		{ID: 2, Name: "Rajesh Kumar", Relation: "Father", Age: 55, Avatar: "👨"},
		{ID: 3, Name: "Sunita Devi", Relation: "Mother", Age: 52, Avatar: "👩"},
	}
}

func str(s string) *string {
	return &s
}

func seedRecords() map[int][]model.HealthRecord {
	return map[int][]model.HealthRecord{
		1: {
			{
				ID:        1,
				Type:      "Blood Pressure",
				Subtype:   str("Medication"),
				Doctor:    str("Dr. Rajesh Kumar"),
				Hospital:  str("Civil Hospital Nabha"),
				Date:      "10/01/2024",
				Icon:      "file-text",
				IconColor: "#4A90E2",
			},
			{
				ID:        2,
				Type:      "Complete Blood Count",
				Doctor:    str("Dr. Priya Sharma"),
				Hospital:  str("District Hospital"),
				Date:      "05/01/2024",
				Icon:      "activity",
				IconColor: "#50C878",
			},
			{
				ID:        3,
				Type:      "Blood Pressure Reading",
				Date:      "03/01/2024",
				Icon:      "heart",
				IconColor: "#FF6B6B",
			},
		},
		2: {
			{
				ID:        4,
				Type:      "Diabetes Check",
				Subtype:   str("Regular Monitoring"),
				Doctor:    str("Dr. Amit Singh"),
				Hospital:  str("City Hospital"),
				Date:      "12/01/2024",
				Icon:      "activity",
				IconColor: "#FF8C00",
			},
			{
				ID:        5,
				Type:      "Heart Check-up",
				Subtype:   str("Annual Review"),
				Doctor:    str("Dr. Neha Gupta"),
				Hospital:  str("Heart Care Center"),
				Date:      "08/01/2024",
				Icon:      "heart",
				IconColor: "#FF6B6B",
			},
		},
		3: {
			{
				ID:        6,
				Type:      "Bone Density Test",
				Subtype:   str("Osteoporosis Screening"),
				Doctor:    str("Dr. Kavita Sharma"),
				Hospital:  str("Women's Health Center"),
				Date:      "15/01/2024",
				Icon:      "file-text",
				IconColor: "#9B59B6",
			},
			{
				ID:        7,
				Type:      "Blood Pressure",
				Subtype:   str("Hypertension Management"),
				Doctor:    str("Dr. Rajesh Kumar"),
				Hospital:  str("Civil Hospital Nabha"),
				Date:      "11/01/2024",
				Icon:      "heart",
				IconColor: "#FF6B6B",
			},
			{
				ID:        8,
				Type:      "Thyroid Function",
				Subtype:   str("Regular Check"),
				Doctor:    str("Dr. Priya Sharma"),
				Hospital:  str("District Hospital"),
				Date:      "07/01/2024",
				Icon:      "activity",
				IconColor: "#50C878",
			},
		},
	}
}

func seedStats() map[int]model.MemberStats {
	return map[int]model.MemberStats{
		1: {Prescriptions: 5, LabReports: 3, Visits: 12},
		2: {Prescriptions: 8, LabReports: 4, Visits: 15},
		3: {Prescriptions: 6, LabReports: 5, Visits: 18},
	}
}
