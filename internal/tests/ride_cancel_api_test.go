package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"goride/internal/app"
	"goride/internal/domain"
	"goride/internal/fare"
	"goride/internal/handler"
	"goride/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(userRepo *MockUserRepository, rideRepo *MockRideRepository, sessions *MockSessionStore) (*gin.Engine, *service.AuthService) {
	auth := service.NewAuthService(userRepo, sessions, testSecret, time.Hour)
	rideSvc := service.NewRideService(rideRepo, fare.DefaultPolicy())
	adminSvc := service.NewAdminService(userRepo, sessions)

	router := app.NewRouter(app.RouterDeps{
		AuthHandler:  handler.NewAuthHandler(auth),
		FareHandler:  handler.NewFareHandler(rideSvc),
		RideHandler:  handler.NewRideHandler(rideSvc),
		AdminHandler: handler.NewAdminHandler(adminSvc),
		AuthService:  auth,
	})
	return router, auth
}

func TestCancelRideEndpoint_EmptyBody(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	rideRepo := NewMockRideRepository()
	router, auth := newTestRouter(userRepo, rideRepo, NewMockSessionStore())

	token, user := registerAndLogin(t, auth, domain.RoleRider)
	rideRepo.AddRide(requestedRide(user.ID))

	// No request body at all.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/rides/ride-1/cancel", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if got := rideRepo.GetRide("ride-1"); got.Status != domain.RideStatusCancelled {
		t.Errorf("Status = %q, want %q", got.Status, domain.RideStatusCancelled)
	}
}

func TestCancelRideEndpoint_WithReason(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	rideRepo := NewMockRideRepository()
	router, auth := newTestRouter(userRepo, rideRepo, NewMockSessionStore())

	token, user := registerAndLogin(t, auth, domain.RoleRider)
	rideRepo.AddRide(requestedRide(user.ID))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/rides/ride-1/cancel",
		strings.NewReader(`{"reason":"changed my mind"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if got := rideRepo.GetRide("ride-1"); got.CancelReason != "changed my mind" {
		t.Errorf("CancelReason = %q", got.CancelReason)
	}
}

func TestCancelRideEndpoint_MalformedBody(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	rideRepo := NewMockRideRepository()
	router, auth := newTestRouter(userRepo, rideRepo, NewMockSessionStore())

	token, user := registerAndLogin(t, auth, domain.RoleRider)
	rideRepo.AddRide(requestedRide(user.ID))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/rides/ride-1/cancel",
		strings.NewReader(`{"reason":`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := rideRepo.GetRide("ride-1"); got.Status != domain.RideStatusRequested {
		t.Errorf("malformed body mutated the ride: status = %q", got.Status)
	}
}
