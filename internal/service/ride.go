package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"goride/internal/domain"
	"goride/internal/fare"
	"goride/internal/repository"
)

// RideService handles ride request operations.
type RideService struct {
	rideRepo repository.RideRepository
	policy   fare.Policy
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository, policy fare.Policy) *RideService {
	return &RideService{rideRepo: rideRepo, policy: policy}
}

// RequestRideInput contains the parameters for requesting a ride.
type RequestRideInput struct {
	RiderID       string
	Pickup        *domain.Location
	Destination   *domain.Location
	PaymentMethod domain.PaymentMethod // Optional: defaults to cash
}

// Quote is a fare estimate for a coordinate pair.
type Quote struct {
	DistanceKm float64
	Fare       int
}

// EstimateFare quotes a trip without creating anything. Coordinates are
// range-checked at this boundary; the fare math itself is permissive.
func (s *RideService) EstimateFare(pickup, destination domain.Coordinate) (*Quote, error) {
	if !validCoordinate(pickup) {
		return nil, ErrInvalidPickupLocation
	}
	if !validCoordinate(destination) {
		return nil, ErrInvalidDestinationLocation
	}

	distance := fare.Distance(pickup, destination)
	return &Quote{
		DistanceKm: distance,
		Fare:       s.policy.EstimateFare(pickup, destination),
	}, nil
}

// RequestRide validates and creates a ride request. The fare is always
// derived from the coordinates here; any client-supplied figure is ignored
// so the quoted price cannot be tampered with before submission.
//
// Policy violations are returned as data alongside a nil ride, not as an
// error, so the caller can present every problem at once. The ride is
// created only when the violation list is empty.
func (s *RideService) RequestRide(ctx context.Context, input RequestRideInput) (*domain.Ride, []fare.Violation, error) {
	if input.RiderID == "" {
		return nil, nil, ErrInvalidRiderID
	}

	paymentMethod, err := ValidatePaymentMethod(string(input.PaymentMethod))
	if err != nil {
		return nil, nil, err
	}

	if input.Pickup != nil && !validCoordinate(input.Pickup.Coordinates) {
		return nil, nil, ErrInvalidPickupLocation
	}
	if input.Destination != nil && !validCoordinate(input.Destination.Coordinates) {
		return nil, nil, ErrInvalidDestinationLocation
	}

	var distance float64
	var amount int
	if input.Pickup != nil && input.Destination != nil {
		distance = fare.Distance(input.Pickup.Coordinates, input.Destination.Coordinates)
		amount = s.policy.EstimateFare(input.Pickup.Coordinates, input.Destination.Coordinates)
	}

	if violations := s.policy.ValidateRideRequest(input.Pickup, input.Destination, amount); len(violations) > 0 {
		return nil, violations, nil
	}

	ride := &domain.Ride{
		ID:            uuid.New().String(),
		RiderID:       input.RiderID,
		Pickup:        *input.Pickup,
		Destination:   *input.Destination,
		DistanceKm:    distance,
		Fare:          amount,
		Status:        domain.RideStatusRequested,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, nil, err
	}
	return ride, nil, nil
}

// GetRide retrieves a ride by ID.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// ListAllRides retrieves every ride in the system.
func (s *RideService) ListAllRides(ctx context.Context) ([]*domain.Ride, error) {
	return s.rideRepo.GetAll(ctx)
}

// ListRiderRides retrieves all rides requested by a rider.
func (s *RideService) ListRiderRides(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}
	return s.rideRepo.GetByRiderID(ctx, riderID)
}

// CancelRideInput contains the parameters for cancelling a ride.
type CancelRideInput struct {
	RideID      string
	RequestedBy string // Rider ID; empty for admin-initiated cancellation
	Reason      string
}

// CancelRide cancels a ride request.
func (s *RideService) CancelRide(ctx context.Context, input CancelRideInput) (*domain.Ride, error) {
	if input.RideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, input.RideID)
	if err != nil {
		return nil, err
	}

	if input.RequestedBy != "" && ride.RiderID != input.RequestedBy {
		return nil, ErrNotRideOwner
	}

	if ride.Status == domain.RideStatusCancelled {
		return nil, ErrRideAlreadyCancelled
	}
	if ride.Status != domain.RideStatusRequested {
		return nil, ErrRideCannotBeCancelled
	}

	ride.Status = domain.RideStatusCancelled
	ride.CancelledAt = time.Now()
	ride.CancelReason = input.Reason

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// ValidatePaymentMethod validates a payment method string.
func ValidatePaymentMethod(method string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(method) {
	case domain.PaymentMethodCash, domain.PaymentMethodCard:
		return domain.PaymentMethod(method), nil
	case "":
		return domain.PaymentMethodCash, nil // Default to cash
	default:
		return "", ErrInvalidPaymentMethod
	}
}

func validCoordinate(c domain.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
