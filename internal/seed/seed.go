// Package seed builds the demo dataset used by development mode and the
// seed command. All timestamps are relative to the supplied time so the
// data stays fresh.
package seed

import (
	"time"

	"github.com/couchcryptid/livestock-risk-service/internal/domain"
)

// Demo users.
const (
	DemoUserID      int64 = 1
	UnlocatedUserID int64 = 2

	demoFarmID      int64 = 1
	unlocatedFarmID int64 = 2
)

const officialReporter = "District Veterinary Officer"

// Dataset is a complete set of records to load into a store.
type Dataset struct {
	Farms         []domain.Farm         `json:"farms"`
	Animals       []domain.Animal       `json:"animals"`
	Outbreaks     []domain.Outbreak     `json:"outbreaks"`
	Vets          []domain.VetService   `json:"veterinary_services"`
	Notifications []domain.Notification `json:"notifications"`
}

// Demo returns the demo dataset as of now. The demo user's dairy farm in
// Anand has an active Foot and Mouth outbreak a few kilometres away; the
// second user's farm has an address but no coordinates yet.
func Demo(now time.Time) Dataset {
	now = now.UTC()
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	yearsAgo := func(y int, m time.Month) time.Time {
		return time.Date(now.Year()-y, m, 15, 9, 0, 0, 0, time.UTC)
	}

	return Dataset{
		Farms: []domain.Farm{
			{
				ID:       demoFarmID,
				UserID:   DemoUserID,
				Name:     "Green Valley Dairy",
				Address:  "Vallabh Vidyanagar Road",
				District: "Anand",
				State:    "Gujarat",
				Pincode:  "388001",
				Country:  "India",
				Lat:      ptr(22.5890),
				Lon:      ptr(72.9510),
			},
			{
				ID:       unlocatedFarmID,
				UserID:   UnlocatedUserID,
				Name:     "Konkan Goat Farm",
				Address:  "Near Pawas Temple",
				District: "Ratnagiri",
				State:    "Maharashtra",
				Pincode:  "415616",
				Country:  "India",
			},
		},
		Animals: []domain.Animal{
			{ID: 1, FarmID: demoFarmID, UserID: DemoUserID, Name: "Lakshmi", Type: "cow", Breed: "Gir", Active: true},
			{ID: 2, FarmID: demoFarmID, UserID: DemoUserID, Name: "Shanti", Type: "cow", Breed: "Jersey", Active: true},
			{ID: 3, FarmID: demoFarmID, UserID: DemoUserID, Name: "Bhima", Type: "buffalo", Breed: "Murrah", Active: true},
			{ID: 4, FarmID: demoFarmID, UserID: DemoUserID, Name: "Meera", Type: "goat", Breed: "Beetal", Active: true},
			{ID: 5, FarmID: demoFarmID, UserID: DemoUserID, Name: "Kali", Type: "chicken", Breed: "Kadaknath", Active: true},
			{ID: 6, FarmID: demoFarmID, UserID: DemoUserID, Name: "Gopal", Type: "pig", Active: false},
			{ID: 7, FarmID: unlocatedFarmID, UserID: UnlocatedUserID, Name: "Raja", Type: "goat", Breed: "Jamunapari", Active: true},
		},
		Outbreaks: []domain.Outbreak{
			{
				ID:          1,
				Disease:     "Foot and Mouth Disease",
				AnimalType:  "cow",
				Severity:    "high",
				Location:    "Anand, Gujarat",
				District:    "Anand",
				State:       "Gujarat",
				Lat:         ptr(22.5645),
				Lon:         ptr(72.9289),
				Active:      true,
				ReportedAt:  daysAgo(3),
				ReportedBy:  officialReporter,
				Description: "Multiple cases of FMD detected in dairy farms.",
				PreventiveMeasures: []string{
					"Isolate affected animals",
					"Implement biosecurity measures",
					"Vaccinate healthy animals",
					"Restrict movement of animals",
				},
				AffectedAnimals: ptr(42),
				Deaths:          ptr(3),
				MorbidityRate:   ptr(35.5),
			},
			{
				ID:          2,
				Disease:     "Newcastle Disease",
				AnimalType:  "chicken",
				Severity:    "medium",
				Location:    "Nashik, Maharashtra",
				District:    "Nashik",
				State:       "Maharashtra",
				Lat:         ptr(19.9975),
				Lon:         ptr(73.7898),
				Active:      true,
				ReportedAt:  daysAgo(8),
				ReportedBy:  "Poultry Farm Association",
				Description: "Several cases reported in backyard poultry.",
				PreventiveMeasures: []string{
					"Vaccinate healthy birds",
					"Improve sanitation",
					"Control wild bird access",
					"Proper disposal of dead birds",
				},
			},
			{
				ID:          3,
				Disease:     "Brucellosis",
				AnimalType:  "goat",
				Severity:    "medium",
				Location:    "Jaipur, Rajasthan",
				District:    "Jaipur",
				State:       "Rajasthan",
				Lat:         ptr(26.9124),
				Lon:         ptr(75.7873),
				Active:      true,
				ReportedAt:  daysAgo(12),
				ReportedBy:  "State Veterinary Department",
				Description: "Cases detected in multiple goat farms.",
			},
			{
				ID:          4,
				Disease:     "Lumpy Skin Disease",
				AnimalType:  "cow",
				Severity:    "high",
				Location:    "Amritsar, Punjab",
				District:    "Amritsar",
				State:       "Punjab",
				Lat:         ptr(31.6340),
				Lon:         ptr(74.8723),
				Active:      false,
				ReportedAt:  daysAgo(45),
				ReportedBy:  "Punjab Livestock Department",
				Description: "Outbreak now contained after vaccination campaign.",
			},
			{
				ID:         5,
				Disease:    "Haemorrhagic Septicaemia",
				AnimalType: "buffalo",
				Severity:   "medium",
				Location:   "Petlad, Anand",
				District:   "Anand",
				State:      "Gujarat",
				Lat:        ptr(22.4768),
				Lon:        ptr(72.8006),
				Active:     false,
				ReportedAt: yearsAgo(1, time.July),
				ReportedBy: officialReporter,
			},
			{
				ID:         6,
				Disease:    "Foot and Mouth Disease",
				AnimalType: "cow",
				Severity:   "medium",
				Location:   "Borsad, Anand",
				District:   "Anand",
				State:      "Gujarat",
				Lat:        ptr(22.4078),
				Lon:        ptr(72.8980),
				Active:     false,
				ReportedAt: yearsAgo(2, time.August),
				ReportedBy: officialReporter,
			},
		},
		Vets: []domain.VetService{
			{
				ID:       1,
				Name:     "District Veterinary Hospital",
				Address:  "Station Road, Anand",
				District: "Anand",
				State:    "Gujarat",
				Lat:      ptr(22.5560),
				Lon:      ptr(72.9550),
				Phone:    "+91 9876543210",
				Website:  "http://example.com/dist-vet",
				Rating:   ptr(4.2),
				Verified: true,
			},
			{
				ID:       2,
				Name:     "Animal Care Clinic",
				Address:  "Near Bus Stand, Vidyanagar",
				District: "Anand",
				State:    "Gujarat",
				Lat:      ptr(22.5420),
				Lon:      ptr(72.9230),
				Phone:    "+91 9876543211",
				Website:  "http://example.com/animalcare",
				Rating:   ptr(4.5),
			},
			{
				ID:       3,
				Name:     "Livestock Health Center",
				Address:  "Farm Road, Khambhat",
				District: "Anand",
				State:    "Gujarat",
				Lat:      ptr(22.3180),
				Lon:      ptr(72.6190),
				Phone:    "+91 9876543212",
				Rating:   ptr(4.0),
			},
		},
		Notifications: []domain.Notification{
			{
				ID:             1,
				UserID:         DemoUserID,
				Type:           domain.NotificationDiseaseAlert,
				Title:          "Disease Outbreak Alert",
				Message:        "Outbreak of Foot and Mouth Disease reported in your district. Take preventive measures.",
				ActionRequired: true,
				ActionURL:      "/disease-alerts",
				CreatedAt:      daysAgo(3),
			},
			{
				ID:        2,
				UserID:    DemoUserID,
				Type:      "system",
				Title:     "Welcome",
				Message:   "Add your animals to receive disease risk alerts.",
				Read:      true,
				CreatedAt: daysAgo(30),
			},
		},
	}
}

func ptr[T any](v T) *T { return &v }
