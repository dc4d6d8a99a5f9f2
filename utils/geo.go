package utils

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle (haversine) distance between two coordinates in kilometres.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// FormatDistance renders a distance in km for display: whole meters while they round
// below 1000 ("850m"), otherwise km with one decimal rounded half up ("3.3km" for 3.25).
func FormatDistance(km float64) string {
	if m := math.Round(km * 1000); m < 1000 {
		return fmt.Sprintf("%dm", int(m))
	}
	return fmt.Sprintf("%.1fkm", math.Round(km*10)/10)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
