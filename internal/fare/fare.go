package fare

import (
	"fmt"
	"math"

	"goride/internal/config"
	"goride/internal/domain"
)

// Policy holds the pricing constants and admissibility thresholds used to
// quote and validate ride requests.
type Policy struct {
	BaseFare      int
	PerKmRate     float64
	MinDistanceKm float64
	MaxDistanceKm float64
	MinFare       int
	MaxFare       int
}

// DefaultPolicy returns the launch pricing policy.
func DefaultPolicy() Policy {
	return Policy{
		BaseFare:      50,
		PerKmRate:     15,
		MinDistanceKm: 0.5,
		MaxDistanceKm: 100,
		MinFare:       50,
		MaxFare:       5000,
	}
}

// PolicyFromConfig builds a Policy from the loaded fare configuration.
func PolicyFromConfig(cfg config.FareConfig) Policy {
	return Policy{
		BaseFare:      cfg.BaseFare,
		PerKmRate:     cfg.PerKmRate,
		MinDistanceKm: cfg.MinDistanceKm,
		MaxDistanceKm: cfg.MaxDistanceKm,
		MinFare:       cfg.MinFare,
		MaxFare:       cfg.MaxFare,
	}
}

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between a and b in kilometers
// using the haversine formula. Inputs are taken as valid degrees; the caller
// is responsible for range checking.
func Distance(a, b domain.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimateFare returns the quoted fare for a trip between pickup and
// destination, rounded half-up to the nearest whole unit. A zero-distance
// trip quotes exactly the base fare.
func (p Policy) EstimateFare(pickup, destination domain.Coordinate) int {
	amount := float64(p.BaseFare) + Distance(pickup, destination)*p.PerKmRate
	return int(math.Floor(amount + 0.5))
}

// Violation codes reported by ValidateRideRequest.
const (
	CodePickupRequired      = "pickup_required"
	CodeDestinationRequired = "destination_required"
	CodeTooClose            = "too_close"
	CodeTooFar              = "too_far"
	CodeFareBelowMinimum    = "fare_below_minimum"
	CodeFareAboveMaximum    = "fare_above_maximum"
)

// Violation is a single reason a ride request is not admissible.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidateRideRequest checks a ride request draft against the policy and
// returns every violation found, in a fixed order. It never short-circuits
// so callers can surface all problems at once, and it never returns an
// error: inadmissibility is data, not failure.
func (p Policy) ValidateRideRequest(pickup, destination *domain.Location, fare int) []Violation {
	var violations []Violation

	if pickup == nil {
		violations = append(violations, Violation{
			Code:    CodePickupRequired,
			Message: "please select a pickup location",
		})
	}
	if destination == nil {
		violations = append(violations, Violation{
			Code:    CodeDestinationRequired,
			Message: "please select a destination location",
		})
	}

	if pickup != nil && destination != nil {
		distance := Distance(pickup.Coordinates, destination.Coordinates)
		if distance < p.MinDistanceKm {
			violations = append(violations, Violation{
				Code:    CodeTooClose,
				Message: fmt.Sprintf("pickup and destination must be at least %g km apart", p.MinDistanceKm),
			})
		}
		if distance > p.MaxDistanceKm {
			violations = append(violations, Violation{
				Code:    CodeTooFar,
				Message: fmt.Sprintf("maximum ride distance is %g km", p.MaxDistanceKm),
			})
		}
	}

	if fare < p.MinFare {
		violations = append(violations, Violation{
			Code:    CodeFareBelowMinimum,
			Message: fmt.Sprintf("minimum fare is %d", p.MinFare),
		})
	}
	if fare > p.MaxFare {
		violations = append(violations, Violation{
			Code:    CodeFareAboveMaximum,
			Message: fmt.Sprintf("maximum fare is %d", p.MaxFare),
		})
	}

	return violations
}
