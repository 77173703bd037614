package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"

	"pharmamart/internal/caching"
	"pharmamart/internal/models"
	"pharmamart/internal/repositories"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrResetTokenInvalid  = errors.New("password reset token is invalid or expired")
)

const (
	sessionTokenTTL = 12 * time.Hour
	resetTokenTTL   = 15 * time.Minute

	resetPurpose = "password_reset"
)

// SessionClaims is the JWT payload carried by the auth cookie. Roles ride in
// the token so per-request gates need no database lookup.
type SessionClaims struct {
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID parses the token subject.
func (c *SessionClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// ResetClaims is the payload of the one-time password reset token.
type ResetClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// IdentityService is the login/registration/role collaborator the entity
// services and the account handlers share.
type IdentityService interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, email, fullName, password string, roles ...string) (*models.User, error)
	PasswordSignIn(ctx context.Context, email, password string) (*models.User, error)
	IssueSessionToken(user *models.User) (string, error)
	ValidateSessionToken(token string) (*SessionClaims, error)

	// Password reset: a signed one-time token replaces the original
	// email-match-only flow.
	IssueResetToken(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, objectName string) error

	// ProvisionPharmacyUser creates an Admin-role user with a random
	// credential and a forced password reset on first login.
	ProvisionPharmacyUser(ctx context.Context, email string) (*models.User, error)
}

type identityService struct {
	userRepo  repositories.UserRepository
	cacheSvc  caching.CacheService
	jwtSecret []byte
}

func NewIdentityService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string) IdentityService {
	return &identityService{
		userRepo:  userRepo,
		cacheSvc:  cacheSvc,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *identityService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.withRoles(ctx, user)
}

func (s *identityService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.withRoles(ctx, user)
}

func (s *identityService) CreateUser(ctx context.Context, email, fullName, password string, roles ...string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	for _, role := range roles {
		if err := s.userRepo.AddToRole(ctx, user.ID, role); err != nil {
			return nil, err
		}
		user.Roles = append(user.Roles, role)
	}
	return user, nil
}

func (s *identityService) PasswordSignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.withRoles(ctx, user)
}

func (s *identityService) IssueSessionToken(user *models.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email:    user.Email,
		FullName: user.FullName,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pharmamart",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *identityService) ValidateSessionToken(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// IssueResetToken verifies the email belongs to a user, stages a one-time
// slot in the cache keyed by the token's jti, and returns the signed token.
func (s *identityService) IssueResetToken(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	now := time.Now()
	jti := uuid.NewString()
	claims := ResetClaims{
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pharmamart",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	slotKey := "reset_token:" + jti
	if err := s.cacheSvc.SetString(ctx, slotKey, user.ID.String(), resetTokenTTL); err != nil {
		return "", fmt.Errorf("staging reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes the reset token: validates signature, purpose and
// the unspent jti slot, then replaces the credential. The slot is deleted so
// the token cannot be replayed.
func (s *identityService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	parsed, err := jwt.ParseWithClaims(token, &ResetClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return ErrResetTokenInvalid
	}
	claims, ok := parsed.Claims.(*ResetClaims)
	if !ok || !parsed.Valid || claims.Purpose != resetPurpose {
		return ErrResetTokenInvalid
	}

	slotKey := "reset_token:" + claims.ID
	stagedUserID, err := s.cacheSvc.GetString(ctx, slotKey)
	if err != nil {
		return ErrResetTokenInvalid
	}
	if stagedUserID != claims.Subject {
		return ErrResetTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	if err := s.userRepo.SetMustChangePassword(ctx, userID, false); err != nil {
		return err
	}

	if err := s.cacheSvc.Delete(ctx, slotKey); err != nil {
		log.Printf("WARN: deleting spent reset token slot: %v", err)
	}
	return nil
}

// ChangePassword is the authenticated flow: the caller proves the current
// credential before it is replaced. Clears must_change_password.
func (s *identityService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	if user.MustChangePassword {
		return s.userRepo.SetMustChangePassword(ctx, userID, false)
	}
	return nil
}

func (s *identityService) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, objectName string) error {
	return s.userRepo.UpdateProfilePicture(ctx, userID, objectName)
}

func (s *identityService) ProvisionPharmacyUser(ctx context.Context, email string) (*models.User, error) {
	// Random credential instead of a shared default; the owner goes through
	// the reset flow before first use.
	password := random.String(24, random.Alphanumeric)
	user, err := s.CreateUser(ctx, email, email, password, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetMustChangePassword(ctx, user.ID, true); err != nil {
		return nil, err
	}
	user.MustChangePassword = true
	return user, nil
}

func (s *identityService) withRoles(ctx context.Context, user *models.User) (*models.User, error) {
	roles, err := s.userRepo.GetRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}
