package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tugas/internal/models"
	"tugas/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 7

// AuthService handles credentials and the session-token lifecycle. A token is
// only valid while its record exists in storage, so sessions can be revoked
// before the token expires.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which a session token is valid
	validate   *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 7 * 24 * time.Hour,
		validate:   validator.New(),
	}
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// uniqueness constraint always see the same form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword validates a raw password and stores its bcrypt hash on the
// user. Every mutation path that accepts a password goes through here, so
// hashing happens exactly once per raw-password assignment.
func (s *AuthService) SetPassword(user *models.User, raw string) error {
	if len(raw) < minPasswordLength {
		return &ValidationError{Fields: map[string]string{
			"password": fmt.Sprintf("must be at least %d characters long", minPasswordLength),
		}}
	}
	if strings.Contains(strings.ToLower(raw), "password") {
		return &ValidationError{Fields: map[string]string{
			"password": `must not contain "password"`,
		}}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return nil
}

// RegisterUser runs the registration pipeline: normalize, validate password,
// hash, validate the record, then persist.
func (s *AuthService) RegisterUser(user *models.User) error {
	user.Email = NormalizeEmail(user.Email)

	rawPassword := user.Password
	if err := s.SetPassword(user, rawPassword); err != nil {
		return err
	}

	if err := s.validate.Struct(user); err != nil {
		return asValidationError(err)
	}

	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s': %w", user.Email, ErrEmailTaken)
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// VerifyCredentials is the single entry point for login. It deliberately does
// not reveal whether the email or the password was wrong.
func (s *AuthService) VerifyCredentials(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken generates a signed session token for the user and records it so
// it can later be revoked. The jti claim makes every issuance distinct, so
// revoking one session never touches another issued in the same second.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.AddToken(&models.AuthToken{UserID: user.ID, Token: tokenString}); err != nil {
		return "", err
	}
	return tokenString, nil
}

// RevokeToken invalidates exactly the given session; other sessions of the
// same user stay valid.
func (s *AuthService) RevokeToken(user *models.User, token string) error {
	return s.userRepo.RemoveToken(user.ID, token)
}

// RevokeAllTokens invalidates every session of the user.
func (s *AuthService) RevokeAllTokens(user *models.User) error {
	return s.userRepo.RemoveAllTokens(user.ID)
}

// ValidateToken checks the signature and expiry of a session token, then
// resolves it to the user it was issued to. A well-formed token that has been
// revoked (no stored record) is rejected.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if _, err := s.userRepo.FindToken(user.ID, tokenString); err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// asValidationError converts validator/v10 failures into the service-level
// field map so handlers render them uniformly.
func asValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(map[string]string)
	for _, e := range validationErrors {
		fields[strings.ToLower(e.Field())] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
	return &ValidationError{Fields: fields}
}
