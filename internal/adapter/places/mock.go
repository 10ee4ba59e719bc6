package places

import "github.com/couchcryptid/livestock-risk-service/internal/domain"

type mockVet struct {
	name, address, phone, website string
	dLat, dLon                    float64
}

var mockVets = []mockVet{
	{"District Veterinary Hospital", "Main Road, City Center", "+91 9876543210", "http://example.com/vet1", 0.01, 0.015},
	{"Animal Care Center", "Near Bus Stand, Green Avenue", "+91 9876543211", "http://example.com/vet2", -0.008, 0.012},
	{"Livestock Health Center", "Rural Area, Farm Road", "+91 9876543212", "http://example.com/vet3", -0.015, -0.01},
}

// MockVets returns placeholder clinics offset from center, with real
// distances.
func MockVets(center domain.GeoPoint) []domain.VetService {
	out := make([]domain.VetService, 0, len(mockVets))
	for _, m := range mockVets {
		p := domain.GeoPoint{Lat: center.Lat + m.dLat, Lon: center.Lon + m.dLon}
		out = append(out, domain.VetService{
			Name:       m.name,
			Address:    m.address,
			Lat:        &p.Lat,
			Lon:        &p.Lon,
			Phone:      m.phone,
			Website:    m.website,
			DistanceKM: domain.Haversine(center, p),
		})
	}
	return out
}
