package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// Farm is a registered farm. Coordinates are optional; risk and outbreak
// features are unavailable until they are set.
type Farm struct {
	ID       int64    `json:"id"`
	UserID   int64    `json:"user_id"`
	Name     string   `json:"name"`
	Address  string   `json:"address,omitempty"`
	District string   `json:"district,omitempty"`
	State    string   `json:"state,omitempty"`
	Pincode  string   `json:"pincode,omitempty"`
	Country  string   `json:"country,omitempty"`
	Lat      *float64 `json:"latitude"`
	Lon      *float64 `json:"longitude"`
}

// Location returns the farm's coordinates, if known.
func (f Farm) Location() (GeoPoint, bool) {
	return pointOf(f.Lat, f.Lon)
}

// Address is a postal address used for geocoding.
type Address struct {
	Street   string
	District string
	State    string
	Pincode  string
	Country  string
}

// AddressOf builds the geocoding address of a farm. Country defaults to India.
func AddressOf(f Farm) Address {
	country := f.Country
	if country == "" {
		country = "India"
	}
	return Address{
		Street:   f.Address,
		District: f.District,
		State:    f.State,
		Pincode:  f.Pincode,
		Country:  country,
	}
}

// String joins the non-empty address parts, most specific first.
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.District, a.State, a.Pincode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Animal is a single animal registered on a farm.
type Animal struct {
	ID     int64  `json:"id"`
	FarmID int64  `json:"farm_id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Type   string `json:"animal_type"`
	Breed  string `json:"breed,omitempty"`
	Active bool   `json:"is_active"`
}
