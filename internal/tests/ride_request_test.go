package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"goride/internal/domain"
	"goride/internal/fare"
	"goride/internal/service"
)

var (
	dhanmondi = domain.Location{
		Name:        "Dhanmondi",
		Address:     "Dhanmondi 27, Dhaka",
		Coordinates: domain.Coordinate{Lat: 23.7461, Lng: 90.3742},
	}
	gulshan = domain.Location{
		Name:        "Gulshan",
		Address:     "Gulshan 1, Dhaka",
		Coordinates: domain.Coordinate{Lat: 23.7925, Lng: 90.4078},
	}
)

func newRideService(rideRepo *MockRideRepository) *service.RideService {
	return service.NewRideService(rideRepo, fare.DefaultPolicy())
}

func TestRequestRide_Success(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := newRideService(rideRepo)

	pickup := dhanmondi
	destination := gulshan
	ride, violations, err := svc.RequestRide(context.Background(), service.RequestRideInput{
		RiderID:     "rider-1",
		Pickup:      &pickup,
		Destination: &destination,
	})
	if err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	if ride.ID == "" {
		t.Error("ride ID not assigned")
	}
	if ride.RiderID != "rider-1" {
		t.Errorf("RiderID = %q, want rider-1", ride.RiderID)
	}
	if ride.Status != domain.RideStatusRequested {
		t.Errorf("Status = %q, want %q", ride.Status, domain.RideStatusRequested)
	}
	if ride.PaymentMethod != domain.PaymentMethodCash {
		t.Errorf("PaymentMethod = %q, want default cash", ride.PaymentMethod)
	}
	if ride.DistanceKm < 5.7 || ride.DistanceKm > 6.1 {
		t.Errorf("DistanceKm = %v, want about 5.9", ride.DistanceKm)
	}
	if atomic.LoadInt32(&rideRepo.CreateCallCount) != 1 {
		t.Errorf("CreateCallCount = %d, want 1", rideRepo.CreateCallCount)
	}
}

func TestRequestRide_FareIsDerivedFromCoordinates(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	svc := newRideService(rideRepo)

	pickup := dhanmondi
	destination := gulshan
	ride, _, err := svc.RequestRide(context.Background(), service.RequestRideInput{
		RiderID:     "rider-1",
		Pickup:      &pickup,
		Destination: &destination,
	})
	if err != nil {
		t.Fatalf("RequestRide failed: %v", err)
	}

	want := fare.DefaultPolicy().EstimateFare(pickup.Coordinates, destination.Coordinates)
	if ride.Fare != want {
		t.Errorf("Fare = %d, want %d (derived from coordinates)", ride.Fare, want)
	}
}

func TestRequestRide_ViolationsBlockCreation(t *testing.T) {
	t.Parallel()

	origin := domain.Location{Coordinates: domain.Coordinate{Lat: 0, Lng: 0}}
	nearby := domain.Location{Coordinates: domain.Coordinate{Lat: 0.001, Lng: 0}}
	faraway := domain.Location{Coordinates: domain.Coordinate{Lat: 1.5, Lng: 0}}

	testCases := []struct {
		name        string
		pickup      *domain.Location
		destination *domain.Location
		wantCodes   []string
	}{
		{
			name:        "missing pickup",
			destination: &gulshan,
			wantCodes:   []string{fare.CodePickupRequired, fare.CodeFareBelowMinimum},
		},
		{
			name:      "missing destination",
			pickup:    &dhanmondi,
			wantCodes: []string{fare.CodeDestinationRequired, fare.CodeFareBelowMinimum},
		},
		{
			name:        "destination too close",
			pickup:      &origin,
			destination: &nearby,
			wantCodes:   []string{fare.CodeTooClose},
		},
		{
			name:        "destination too far",
			pickup:      &origin,
			destination: &faraway,
			wantCodes:   []string{fare.CodeTooFar},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rideRepo := NewMockRideRepository()
			svc := newRideService(rideRepo)

			ride, violations, err := svc.RequestRide(context.Background(), service.RequestRideInput{
				RiderID:     "rider-1",
				Pickup:      tc.pickup,
				Destination: tc.destination,
			})
			if err != nil {
				t.Fatalf("RequestRide returned an error for a policy violation: %v", err)
			}
			if ride != nil {
				t.Error("ride created despite violations")
			}
			if atomic.LoadInt32(&rideRepo.CreateCallCount) != 0 {
				t.Errorf("CreateCallCount = %d, want 0", rideRepo.CreateCallCount)
			}

			if len(violations) != len(tc.wantCodes) {
				t.Fatalf("got %d violations %v, want %v", len(violations), violations, tc.wantCodes)
			}
			for i, code := range tc.wantCodes {
				if violations[i].Code != code {
					t.Errorf("violation %d = %q, want %q", i, violations[i].Code, code)
				}
			}
		})
	}
}

func TestRequestRide_InputValidation(t *testing.T) {
	t.Parallel()

	outOfRange := domain.Location{Coordinates: domain.Coordinate{Lat: 91, Lng: 0}}
	pickup := dhanmondi
	destination := gulshan

	testCases := []struct {
		name    string
		input   service.RequestRideInput
		wantErr error
	}{
		{
			name: "missing rider ID",
			input: service.RequestRideInput{
				Pickup:      &pickup,
				Destination: &destination,
			},
			wantErr: service.ErrInvalidRiderID,
		},
		{
			name: "pickup latitude out of range",
			input: service.RequestRideInput{
				RiderID:     "rider-1",
				Pickup:      &outOfRange,
				Destination: &destination,
			},
			wantErr: service.ErrInvalidPickupLocation,
		},
		{
			name: "destination latitude out of range",
			input: service.RequestRideInput{
				RiderID:     "rider-1",
				Pickup:      &pickup,
				Destination: &outOfRange,
			},
			wantErr: service.ErrInvalidDestinationLocation,
		},
		{
			name: "unknown payment method",
			input: service.RequestRideInput{
				RiderID:       "rider-1",
				Pickup:        &pickup,
				Destination:   &destination,
				PaymentMethod: "cheque",
			},
			wantErr: service.ErrInvalidPaymentMethod,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rideRepo := NewMockRideRepository()
			svc := newRideService(rideRepo)

			_, _, err := svc.RequestRide(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRequestRide_RepositoryError(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.CreateError = errors.New("connection reset")
	svc := newRideService(rideRepo)

	pickup := dhanmondi
	destination := gulshan
	_, _, err := svc.RequestRide(context.Background(), service.RequestRideInput{
		RiderID:     "rider-1",
		Pickup:      &pickup,
		Destination: &destination,
	})
	if err == nil {
		t.Fatal("expected error when the repository fails")
	}
}

func TestEstimateFare_Quote(t *testing.T) {
	t.Parallel()

	svc := newRideService(NewMockRideRepository())

	quote, err := svc.EstimateFare(dhanmondi.Coordinates, gulshan.Coordinates)
	if err != nil {
		t.Fatalf("EstimateFare failed: %v", err)
	}
	if quote.DistanceKm < 5.7 || quote.DistanceKm > 6.1 {
		t.Errorf("DistanceKm = %v, want about 5.9", quote.DistanceKm)
	}
	if quote.Fare < 136 || quote.Fare > 142 {
		t.Errorf("Fare = %d, want about 139", quote.Fare)
	}
}

func TestEstimateFare_RejectsOutOfRangeCoordinates(t *testing.T) {
	t.Parallel()

	svc := newRideService(NewMockRideRepository())

	_, err := svc.EstimateFare(domain.Coordinate{Lat: 0, Lng: 181}, gulshan.Coordinates)
	if !errors.Is(err, service.ErrInvalidPickupLocation) {
		t.Errorf("err = %v, want %v", err, service.ErrInvalidPickupLocation)
	}

	_, err = svc.EstimateFare(dhanmondi.Coordinates, domain.Coordinate{Lat: -91, Lng: 0})
	if !errors.Is(err, service.ErrInvalidDestinationLocation) {
		t.Errorf("err = %v, want %v", err, service.ErrInvalidDestinationLocation)
	}
}

func requestedRide(riderID string) *domain.Ride {
	return &domain.Ride{
		ID:            "ride-1",
		RiderID:       riderID,
		Pickup:        dhanmondi,
		Destination:   gulshan,
		DistanceKm:    5.9,
		Fare:          139,
		Status:        domain.RideStatusRequested,
		PaymentMethod: domain.PaymentMethodCash,
		CreatedAt:     time.Now(),
	}
}

func TestCancelRide_ByOwner(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(requestedRide("rider-1"))
	svc := newRideService(rideRepo)

	ride, err := svc.CancelRide(context.Background(), service.CancelRideInput{
		RideID:      "ride-1",
		RequestedBy: "rider-1",
		Reason:      "changed my mind",
	})
	if err != nil {
		t.Fatalf("CancelRide failed: %v", err)
	}
	if ride.Status != domain.RideStatusCancelled {
		t.Errorf("Status = %q, want %q", ride.Status, domain.RideStatusCancelled)
	}
	if ride.CancelReason != "changed my mind" {
		t.Errorf("CancelReason = %q", ride.CancelReason)
	}
	if ride.CancelledAt.IsZero() {
		t.Error("CancelledAt not set")
	}
}

func TestCancelRide_NotOwner(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(requestedRide("rider-1"))
	svc := newRideService(rideRepo)

	_, err := svc.CancelRide(context.Background(), service.CancelRideInput{
		RideID:      "ride-1",
		RequestedBy: "rider-2",
	})
	if !errors.Is(err, service.ErrNotRideOwner) {
		t.Errorf("err = %v, want %v", err, service.ErrNotRideOwner)
	}
}

func TestCancelRide_ByAdmin(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(requestedRide("rider-1"))
	svc := newRideService(rideRepo)

	// Admin-initiated cancellations skip the owner check.
	ride, err := svc.CancelRide(context.Background(), service.CancelRideInput{
		RideID: "ride-1",
		Reason: "fraud review",
	})
	if err != nil {
		t.Fatalf("CancelRide failed: %v", err)
	}
	if ride.Status != domain.RideStatusCancelled {
		t.Errorf("Status = %q, want %q", ride.Status, domain.RideStatusCancelled)
	}
}

func TestCancelRide_AlreadyCancelled(t *testing.T) {
	t.Parallel()

	cancelled := requestedRide("rider-1")
	cancelled.Status = domain.RideStatusCancelled

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(cancelled)
	svc := newRideService(rideRepo)

	_, err := svc.CancelRide(context.Background(), service.CancelRideInput{
		RideID:      "ride-1",
		RequestedBy: "rider-1",
	})
	if !errors.Is(err, service.ErrRideAlreadyCancelled) {
		t.Errorf("err = %v, want %v", err, service.ErrRideAlreadyCancelled)
	}
}

func TestListRiderRides(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	mine := requestedRide("rider-1")
	other := requestedRide("rider-2")
	other.ID = "ride-2"
	rideRepo.AddRide(mine)
	rideRepo.AddRide(other)
	svc := newRideService(rideRepo)

	rides, err := svc.ListRiderRides(context.Background(), "rider-1")
	if err != nil {
		t.Fatalf("ListRiderRides failed: %v", err)
	}
	if len(rides) != 1 || rides[0].ID != "ride-1" {
		t.Errorf("got %d rides, want only ride-1", len(rides))
	}
}
