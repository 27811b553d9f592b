package service

import (
	"context"
	"log"

	"goride/internal/domain"
	"goride/internal/redis"
	"goride/internal/repository"
)

// AdminService handles account moderation: blocking users and managing
// driver approval. These are the mutations the access gate's decisions
// depend on, so every change invalidates the session cache and, where the
// change locks the account out, revokes outstanding sessions.
type AdminService struct {
	userRepo repository.UserRepository
	sessions redis.SessionStoreInterface
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repository.UserRepository, sessions redis.SessionStoreInterface) *AdminService {
	return &AdminService{userRepo: userRepo, sessions: sessions}
}

// ListUsers retrieves all users.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// SetUserBlocked blocks or unblocks a user. Blocking revokes the user's
// outstanding sessions so in-flight tokens are denied immediately rather
// than on cache expiry; unblocking restores them.
func (s *AdminService) SetUserBlocked(ctx context.Context, userID string, blocked bool) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsBlocked = blocked
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, userID)
	if blocked {
		s.revokeSessions(ctx, userID)
	} else if !driverSuspended(user) {
		s.restoreSessions(ctx, userID)
	}
	return user, nil
}

func driverSuspended(user *domain.User) bool {
	return user.DriverApproval != nil && user.DriverApproval.IsSuspended
}

// SetDriverApproved approves or un-approves a driver. Approval never
// touches session revocation; an unapproved driver is turned away by the
// gate's record inspection, not by the authorization layer.
func (s *AdminService) SetDriverApproved(ctx context.Context, userID string, approved bool) (*domain.User, error) {
	return s.updateDriverApproval(ctx, userID, func(a *domain.DriverApproval) {
		a.IsApproved = approved
	}, nil)
}

// SetDriverSuspended suspends or reinstates a driver. Suspension revokes
// outstanding sessions the same way blocking does.
func (s *AdminService) SetDriverSuspended(ctx context.Context, userID string, suspended bool) (*domain.User, error) {
	revoke := suspended
	return s.updateDriverApproval(ctx, userID, func(a *domain.DriverApproval) {
		a.IsSuspended = suspended
	}, &revoke)
}

func (s *AdminService) updateDriverApproval(ctx context.Context, userID string, apply func(*domain.DriverApproval), revoke *bool) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleDriver {
		return nil, ErrNotDriver
	}

	if user.DriverApproval == nil {
		user.DriverApproval = &domain.DriverApproval{}
	}
	apply(user.DriverApproval)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, userID)
	if revoke != nil {
		if *revoke {
			s.revokeSessions(ctx, userID)
		} else if !user.IsBlocked {
			s.restoreSessions(ctx, userID)
		}
	}
	return user, nil
}

// The session store is best effort here: the database record already
// changed, and the cache TTL bounds how long a stale session can linger.
// A failed write still gets logged so operators can see a revocation that
// did not land.
func (s *AdminService) invalidateCache(ctx context.Context, userID string) {
	if err := s.sessions.InvalidateUser(ctx, userID); err != nil {
		log.Printf("failed to invalidate session cache for user %s: %v", userID, err)
	}
}

func (s *AdminService) revokeSessions(ctx context.Context, userID string) {
	if err := s.sessions.RevokeSessions(ctx, userID); err != nil {
		log.Printf("failed to revoke sessions for user %s: %v", userID, err)
	}
}

func (s *AdminService) restoreSessions(ctx context.Context, userID string) {
	if err := s.sessions.RestoreSessions(ctx, userID); err != nil {
		log.Printf("failed to restore sessions for user %s: %v", userID, err)
	}
}
