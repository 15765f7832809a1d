package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"tugas/internal/models"
	"tugas/internal/repositories"
	"tugas/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteWithTasks(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) AddToken(token *models.AuthToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockUserRepository) FindToken(userID, token string) (*models.AuthToken, error) {
	args := m.Called(userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthToken), args.Error(1)
}

func (m *MockUserRepository) RemoveToken(userID, token string) error {
	args := m.Called(userID, token)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveAllTokens(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_SetPassword(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), "test_jwt_secret")
	user := &models.User{}

	// Too short
	err := authService.SetPassword(user, "short")
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "password")

	// Contains the forbidden substring, any case
	err = authService.SetPassword(user, "myPassWord123")
	assert.ErrorAs(t, err, &validationErr)

	// Valid password is stored hashed, never raw
	err = authService.SetPassword(user, "secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Successful registration normalizes the email and hashes the password
	user := &models.User{
		Name:     "Test User",
		Email:    "  Test@Example.COM ",
		Password: "secret123",
	}
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, fmt.Errorf("not found: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(&models.User{
		Name:     "Other",
		Email:    "test@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)

	// Invalid email never reaches the repository
	err = authService.RegisterUser(&models.User{
		Name:     "Bad Email",
		Email:    "not-an-email",
		Password: "secret123",
	})
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")

	// Negative age is rejected
	err = authService.RegisterUser(&models.User{
		Name:     "Negative",
		Email:    "negative@example.com",
		Password: "secret123",
		Age:      -1,
	})
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "age")
}

func TestAuthService_VerifyCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful login, with email normalization applied to the lookup
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	got, err := authService.VerifyCredentials("Test@Example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Wrong password
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	_, err = authService.VerifyCredentials("test@example.com", "wrongpass1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, fmt.Errorf("not found: %w", repositories.ErrNotFound)).Once()
	_, err = authService.VerifyCredentials("ghost@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_TokenLifecycle(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{ID: "user-123", Name: "Test User", Email: "test@example.com"}

	mockRepo.On("AddToken", mock.AnythingOfType("*models.AuthToken")).Return(nil).Once()
	token, err := authService.IssueToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// A stored token resolves back to its user
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("FindToken", user.ID, token).Return(&models.AuthToken{UserID: user.ID, Token: token}, nil).Once()
	got, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// A revoked token is rejected even though the signature is still valid
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("FindToken", user.ID, token).Return(nil, fmt.Errorf("not found: %w", repositories.ErrNotFound)).Once()
	_, err = authService.ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_IssueToken_DistinctPerSession(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{ID: "user-123", Name: "Test User", Email: "test@example.com"}
	mockRepo.On("AddToken", mock.AnythingOfType("*models.AuthToken")).Return(nil).Twice()

	// Two sessions opened within the same second must still be separate
	// tokens, so revoking one cannot revoke the other.
	first, err := authService.IssueToken(user)
	assert.NoError(t, err)
	second, err := authService.IssueToken(user)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_Rejections(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Garbage token
	_, err := authService.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Wrong signing key
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forged, _ := other.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(forged)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Expired token signed with the right key
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	stale, _ := expired.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(stale)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthService_RevokeTokens(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{ID: "user-123"}

	mockRepo.On("RemoveToken", user.ID, "token-a").Return(nil).Once()
	assert.NoError(t, authService.RevokeToken(user, "token-a"))

	mockRepo.On("RemoveAllTokens", user.ID).Return(nil).Once()
	assert.NoError(t, authService.RevokeAllTokens(user))

	mockRepo.AssertExpectations(t)
}
