package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

// Immutable geographic point (latitude, longitude in degrees).
// Marked locations are canonical contract points; unmarked ones are ad-hoc stops.
type Location struct {
	ID     int     `json:"id,omitempty"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Marked bool    `json:"marked,omitempty"`
}

// Valid reports whether the coordinates fall inside the WGS84 range.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// DistanceTo returns the great-circle distance in kilometers.
func (l Location) DistanceTo(other Location) float64 {
	lat1, lng1 := toRadians(l.Lat), toRadians(l.Lng)
	lat2, lng2 := toRadians(other.Lat), toRadians(other.Lng)

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	a := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.4f, %.4f)", l.Lat, l.Lng)
}

// MinDistanceToPath returns the distance from point to the closest path vertex.
// Segments between vertices are not interpolated. An empty path yields +Inf.
func MinDistanceToPath(point Location, path []Location) float64 {
	if len(path) == 0 {
		return math.Inf(1)
	}

	dists := make([]float64, len(path))
	for i, p := range path {
		dists[i] = point.DistanceTo(p)
	}
	return floats.Min(dists)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
