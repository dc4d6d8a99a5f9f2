package discovery

import "guia-piracicaba-backend/utils"

// Position is a user coordinate in decimal degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PositionProvider supplies the user's position when one is known.
type PositionProvider interface {
	Position() (Position, bool)
}

// Fixed is a provider that always returns the same coordinate.
type Fixed Position

func (f Fixed) Position() (Position, bool) {
	return Position(f), true
}

// Unknown never has a position; results keep store order.
type Unknown struct{}

func (Unknown) Position() (Position, bool) {
	return Position{}, false
}

// Valid reports whether p lies within latitude/longitude bounds.
func (p Position) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// DistanceTo returns the great-circle distance in kilometres.
func (p Position) DistanceTo(other Position) float64 {
	return utils.DistanceKm(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}
