package domain

import "time"

// RideStatus represents the current status of a ride request.
type RideStatus string

const (
	RideStatusRequested RideStatus = "REQUESTED"
	RideStatusCancelled RideStatus = "CANCELLED"
)

// PaymentMethod represents the payment method for a ride.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// Ride represents a ride request in the system.
// Fare is always derived server-side from the coordinates; it is never
// taken from client input.
type Ride struct {
	ID            string
	RiderID       string
	Pickup        Location
	Destination   Location
	DistanceKm    float64
	Fare          int
	Status        RideStatus
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
	CancelledAt   time.Time
	CancelReason  string
}
