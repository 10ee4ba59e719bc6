package domain

import (
	"context"
	"math"
	"sort"
)

// DefaultVetRadiusKM is the search radius for veterinary services.
const DefaultVetRadiusKM = 20.0

// sameVetTolerance is the coordinate delta, in degrees, under which a places
// result is treated as a stored vet.
const sameVetTolerance = 0.001

// VetService is a veterinary clinic or hospital.
type VetService struct {
	ID         int64    `json:"id,omitempty"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	District   string   `json:"district,omitempty"`
	State      string   `json:"state,omitempty"`
	Lat        *float64 `json:"latitude"`
	Lon        *float64 `json:"longitude"`
	Phone      string   `json:"phone,omitempty"`
	Website    string   `json:"website,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	PlaceID    string   `json:"place_id,omitempty"`
	Verified   bool     `json:"is_verified"`
	DistanceKM float64  `json:"distance"`
}

// Point returns the vet coordinates, if recorded.
func (v VetService) Point() (GeoPoint, bool) {
	return pointOf(v.Lat, v.Lon)
}

// VetFinder searches an external directory for vets near a point.
type VetFinder interface {
	NearbyVets(ctx context.Context, center GeoPoint, radiusKM float64) []VetService
}

// MergeVets combines stored vets with directory results around farm. Stored
// vets outside radiusKM or without coordinates are dropped; directory results
// duplicating a kept stored vet are skipped. The result is nearest first.
func MergeVets(farm GeoPoint, stored, found []VetService, radiusKM float64) []VetService {
	out := make([]VetService, 0, len(stored)+len(found))

	for _, v := range stored {
		p, ok := v.Point()
		if !ok {
			continue
		}
		d := Haversine(farm, p)
		if d > radiusKM {
			continue
		}
		v.DistanceKM = d
		out = append(out, v)
	}
	keptStored := len(out)

	for _, v := range found {
		p, ok := v.Point()
		if !ok {
			continue
		}
		if duplicatesAny(p, out[:keptStored]) {
			continue
		}
		v.DistanceKM = Haversine(farm, p)
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKM < out[j].DistanceKM
	})
	return out
}

func duplicatesAny(p GeoPoint, vets []VetService) bool {
	for _, v := range vets {
		q, _ := v.Point()
		if math.Abs(q.Lat-p.Lat) < sameVetTolerance && math.Abs(q.Lon-p.Lon) < sameVetTolerance {
			return true
		}
	}
	return false
}
