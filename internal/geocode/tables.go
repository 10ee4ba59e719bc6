package geocode

import "github.com/couchcryptid/livestock-risk-service/internal/domain"

// pincodes maps postal codes to their locality centre.
var pincodes = map[string]domain.GeoPoint{
	// Maharashtra
	"415616": {Lat: 16.991, Lon: 73.299},   // Pawas, Ratnagiri
	"415639": {Lat: 16.9902, Lon: 73.3129}, // Ratnagiri
	"416604": {Lat: 16.7042, Lon: 74.2433}, // Kolhapur
	"444303": {Lat: 20.9320, Lon: 77.7523}, // Amravati
	"431001": {Lat: 19.8762, Lon: 75.3433}, // Aurangabad
	"413713": {Lat: 17.6599, Lon: 74.0089}, // Satara
	"422101": {Lat: 19.9975, Lon: 73.7898}, // Nashik
	"400615": {Lat: 19.2350, Lon: 72.9674}, // Kasarvadavli, Thane West
	// Gujarat
	"370201": {Lat: 23.2472, Lon: 69.6682}, // Kutch
	"380015": {Lat: 23.0225, Lon: 72.5714}, // Ahmedabad
	"390001": {Lat: 22.3072, Lon: 73.1812}, // Vadodara
	"395003": {Lat: 21.1702, Lon: 72.8311}, // Surat
	// Punjab
	"143001": {Lat: 31.6340, Lon: 74.8723}, // Amritsar
	"144001": {Lat: 31.3260, Lon: 75.5762}, // Jalandhar
	"160022": {Lat: 30.7333, Lon: 76.7794}, // Chandigarh
	// Rajasthan
	"302001": {Lat: 26.9124, Lon: 75.7873}, // Jaipur
	"313001": {Lat: 24.5854, Lon: 73.7125}, // Udaipur
	"342001": {Lat: 26.2389, Lon: 73.0243}, // Jodhpur
}

type districtKey struct{ district, state string }

// landmark is a locality recognised inside a free-form street address.
type landmark struct {
	keyword string
	point   domain.GeoPoint
}

type districtEntry struct {
	landmarks []landmark // checked in order
	centre    domain.GeoPoint
}

var districts = map[districtKey]districtEntry{
	{"ratnagiri", "maharashtra"}: {
		landmarks: []landmark{{"pawas", domain.GeoPoint{Lat: 16.991, Lon: 73.299}}},
		centre:    domain.GeoPoint{Lat: 16.9902, Lon: 73.3129},
	},
	{"thane", "maharashtra"}: {
		landmarks: []landmark{
			{"vartak nagar", domain.GeoPoint{Lat: 19.2220, Lon: 72.9614}},
			{"thane west", domain.GeoPoint{Lat: 19.2183, Lon: 72.9781}},
			{"kasarvadavli", domain.GeoPoint{Lat: 19.2350, Lon: 72.9674}},
			{"ghodbunder", domain.GeoPoint{Lat: 19.2370, Lon: 72.9680}},
		},
		centre: domain.GeoPoint{Lat: 19.2183, Lon: 72.9781},
	},
	{"mumbai", "maharashtra"}: {
		landmarks: []landmark{
			{"andheri", domain.GeoPoint{Lat: 19.1136, Lon: 72.8697}},
			{"bandra", domain.GeoPoint{Lat: 19.0596, Lon: 72.8295}},
		},
		centre: domain.GeoPoint{Lat: 19.0760, Lon: 72.8777},
	},
	{"pune", "maharashtra"}:     {centre: domain.GeoPoint{Lat: 18.5204, Lon: 73.8567}},
	{"nashik", "maharashtra"}:   {centre: domain.GeoPoint{Lat: 19.9975, Lon: 73.7898}},
	{"kolhapur", "maharashtra"}: {centre: domain.GeoPoint{Lat: 16.7042, Lon: 74.2433}},
	{"amravati", "maharashtra"}: {centre: domain.GeoPoint{Lat: 20.9320, Lon: 77.7523}},
	{"ahmedabad", "gujarat"}:    {centre: domain.GeoPoint{Lat: 23.0225, Lon: 72.5714}},
	{"vadodara", "gujarat"}:     {centre: domain.GeoPoint{Lat: 22.3072, Lon: 73.1812}},
	{"jaipur", "rajasthan"}:     {centre: domain.GeoPoint{Lat: 26.9124, Lon: 75.7873}},
	{"amritsar", "punjab"}:      {centre: domain.GeoPoint{Lat: 31.6340, Lon: 74.8723}},
}

var states = map[string]domain.GeoPoint{
	"maharashtra":    {Lat: 19.7515, Lon: 75.7139},
	"gujarat":        {Lat: 22.2587, Lon: 71.1924},
	"rajasthan":      {Lat: 27.0238, Lon: 74.2179},
	"punjab":         {Lat: 31.1471, Lon: 75.3412},
	"haryana":        {Lat: 29.0588, Lon: 76.0856},
	"uttar pradesh":  {Lat: 26.8467, Lon: 80.9462},
	"madhya pradesh": {Lat: 22.9734, Lon: 78.6569},
	"bihar":          {Lat: 25.0961, Lon: 85.3131},
	"west bengal":    {Lat: 22.9868, Lon: 87.8550},
	"tamil nadu":     {Lat: 11.1271, Lon: 78.6569},
	"karnataka":      {Lat: 15.3173, Lon: 75.7139},
	"kerala":         {Lat: 10.8505, Lon: 76.2711},
	"andhra pradesh": {Lat: 15.9129, Lon: 79.7400},
	"telangana":      {Lat: 18.1124, Lon: 79.0193},
	"odisha":         {Lat: 20.9517, Lon: 85.0985},
	"assam":          {Lat: 26.2006, Lon: 92.9376},
	"chhattisgarh":   {Lat: 21.2787, Lon: 81.8661},
}
