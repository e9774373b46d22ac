package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gymdesk/clock"
	"gymdesk/config"
	"gymdesk/models"
	"gymdesk/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin uint = 1

// TokenClaims is the JWT payload. The tenant id embedded here is the
// trusted scope for every downstream operation.
type TokenClaims struct {
	jwt.RegisteredClaims
	TenantID uint `json:"tenant_id"`
	RoleID   uint `json:"role_id"`
}

type AuthService struct {
	store store.Store
	log   *zap.Logger
	clk   clock.Clock

	secret []byte
	issuer string
	ttl    time.Duration
}

func NewAuthService(st store.Store, log *zap.Logger, clk clock.Clock, cfg config.Config) *AuthService {
	return &AuthService{
		store:  st,
		log:    log.Named("auth.service"),
		clk:    clk,
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    cfg.TokenTTL,
	}
}

type RegisterInput struct {
	TenantID uint
	FullName string
	Email    string
	Phone    string
	Password string
	RoleID   uint
}

type LoginInput struct {
	TenantID uint
	Email    string
	Password string
}

// CreateTenant provisions a gym. Names are unique across the system.
func (s *AuthService) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	existing, err := s.store.FindTenantByName(ctx, tenant.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrTenantExists
	}
	if err := s.store.InsertTenant(ctx, tenant); err != nil {
		return err
	}
	s.log.Info("tenant created", zap.Uint("tenant_id", tenant.ID), zap.String("name", tenant.Name))
	return nil
}

// Register creates a staff user for a tenant and returns a signed token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	tenant, err := s.store.FindTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, "", err
	}
	if tenant == nil {
		return nil, "", ErrNotFound
	}

	existing, err := s.store.FindUserByEmail(ctx, in.TenantID, in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	roleID := in.RoleID
	if roleID == 0 {
		roleID = 2
	}

	user := &models.User{
		TenantID:     in.TenantID,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		RoleID:       roleID,
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered",
		zap.Uint("tenant_id", in.TenantID),
		zap.Uint("user_id", user.ID))
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	user, err := s.store.FindUserByEmail(ctx, in.TenantID, in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.store.TouchUserLogin(ctx, user.ID, user.TenantID); err != nil {
		s.log.Warn("failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	now := s.clk.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		TenantID: user.TenantID,
		RoleID:   user.RoleID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.clk.Now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// UserID extracts the numeric subject from the claims.
func (c *TokenClaims) UserID() uint {
	id, _ := strconv.ParseUint(c.Subject, 10, 64)
	return uint(id)
}
