package postgres

import (
	"context"
	"database/sql"

	"goride/internal/domain"
	"goride/internal/repository"
)

// RideRepository implements repository.RideRepository using PostgreSQL.
type RideRepository struct {
	db *sql.DB
}

// NewRideRepository creates a new RideRepository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{db: db}
}

const rideColumns = `id, rider_id, pickup_name, pickup_address, pickup_lat, pickup_lng,
	destination_name, destination_address, destination_lat, destination_lng,
	distance_km, fare, status, payment_method, created_at, cancelled_at, cancel_reason`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `INSERT INTO rides (id, rider_id, pickup_name, pickup_address, pickup_lat, pickup_lng,
	              destination_name, destination_address, destination_lat, destination_lng,
	              distance_km, fare, status, payment_method)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		ride.ID, ride.RiderID,
		ride.Pickup.Name, ride.Pickup.Address, ride.Pickup.Coordinates.Lat, ride.Pickup.Coordinates.Lng,
		ride.Destination.Name, ride.Destination.Address, ride.Destination.Coordinates.Lat, ride.Destination.Coordinates.Lng,
		ride.DistanceKm, ride.Fare, string(ride.Status), string(ride.PaymentMethod),
	)
	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`
	ride, err := scanRide(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ride, nil
}

// GetByRiderID retrieves all rides requested by a rider, newest first.
func (r *RideRepository) GetByRiderID(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE rider_id = $1 ORDER BY created_at DESC`
	return r.queryRides(ctx, query, riderID)
}

// GetAll retrieves all rides, newest first.
func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides ORDER BY created_at DESC`
	return r.queryRides(ctx, query)
}

// Update updates an existing ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `UPDATE rides SET status = $2, cancelled_at = $3, cancel_reason = $4 WHERE id = $1`

	var cancelledAt sql.NullTime
	if !ride.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: ride.CancelledAt, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, ride.ID, string(ride.Status), cancelledAt, ride.CancelReason)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RideRepository) queryRides(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var status, paymentMethod string
	var cancelledAt sql.NullTime
	var cancelReason sql.NullString

	err := row.Scan(&ride.ID, &ride.RiderID,
		&ride.Pickup.Name, &ride.Pickup.Address, &ride.Pickup.Coordinates.Lat, &ride.Pickup.Coordinates.Lng,
		&ride.Destination.Name, &ride.Destination.Address, &ride.Destination.Coordinates.Lat, &ride.Destination.Coordinates.Lng,
		&ride.DistanceKm, &ride.Fare, &status, &paymentMethod,
		&ride.CreatedAt, &cancelledAt, &cancelReason)
	if err != nil {
		return nil, err
	}

	ride.Status = domain.RideStatus(status)
	ride.PaymentMethod = domain.PaymentMethod(paymentMethod)
	if cancelledAt.Valid {
		ride.CancelledAt = cancelledAt.Time
	}
	ride.CancelReason = cancelReason.String
	return &ride, nil
}
