package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"goride/internal/access"
	"goride/internal/domain"
	"goride/internal/redis"
	"goride/internal/repository"
)

// AuthService handles registration, login, and session resolution.
type AuthService struct {
	userRepo repository.UserRepository
	sessions redis.SessionStoreInterface
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	sessions redis.SessionStoreInterface,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a new rider or driver account. Admin accounts are not
// self-assignable. Drivers start unapproved and must be approved by an
// admin before the access gate lets them through.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}

	role := req.Role
	if role == "" {
		role = domain.RoleRider
	}
	if role != domain.RoleRider && role != domain.RoleDriver {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if role == domain.RoleDriver {
		user.DriverApproval = &domain.DriverApproval{}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed session token. Blocked or
// suspended accounts still authenticate; the access gate is what turns them
// away, so they land on the account-status page instead of a login loop.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *AuthService) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ErrMissingToken is reported through the session state when no bearer
// token accompanies a request.
var ErrMissingToken = errors.New("missing bearer token")

// ResolveSession turns a bearer token into a session state for the access
// gate. Every ambiguous outcome maps to a non-Ok state so the gate fails
// closed:
//
//   - missing, malformed, or expired token: Failed
//   - token revoked (account blocked or driver suspended mid-session): AuthDenied
//   - account deleted since the token was issued: Ok with no user
//   - store errors: Failed
func (s *AuthService) ResolveSession(ctx context.Context, token string) access.SessionState {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return access.Failed(ErrMissingToken)
	}

	claims, err := s.parseToken(token)
	if err != nil {
		return access.Failed(err)
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.UserID)
	if err != nil {
		return access.Failed(err)
	}
	if revoked {
		return access.AuthDenied()
	}

	user, err := s.sessions.GetUser(ctx, claims.UserID)
	if err != nil {
		return access.Failed(err)
	}
	if user == nil {
		user, err = s.userRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return access.Ok(nil)
			}
			return access.Failed(err)
		}
		// Best effort: a failed cache fill only costs the next lookup.
		_ = s.sessions.SetUser(ctx, user)
	}

	return access.Ok(user)
}
