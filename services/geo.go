package services

import (
	"fmt"
	"math"

	"preschool-finder/models"
)

// EarthRadiusMiles is the mean Earth radius used by Distance.
const EarthRadiusMiles = 3958.8

// Distance returns the great-circle distance in miles between two points
// using the Haversine formula. It fails with ErrInvalidArgument when a
// coordinate is out of range or not finite.
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := ValidateCoordinates(lat1, lon1); err != nil {
		return 0, err
	}
	if err := ValidateCoordinates(lat2, lon2); err != nil {
		return 0, err
	}

	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// rounding can push a just past 1 for antipodal points
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c, nil
}

// DistanceBetween is Distance over two coordinate pairs.
func DistanceBetween(from, to models.Coordinates) (float64, error) {
	return Distance(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

// ValidateCoordinates checks that lat is within [-90, 90] and lon within
// [-180, 180].
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidArgument, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidArgument, lon)
	}
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
