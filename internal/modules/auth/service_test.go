package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"radioplayer/internal/domain"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	u.ID = 1
	return args.Error(0)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func TestService_SignUp_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	jwtSvc.On("GenerateToken", mock.Anything).Return("fake-jwt-token", nil)

	svc := NewService(userRepo, jwtSvc)
	user, token, err := svc.SignUp(context.Background(), CredentialsRequest{
		Username: "  Alice ",
		Password: "pw1234",
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "fake-jwt-token", token)
	assert.Empty(t, user.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestService_SignUp_UsernameTaken(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	svc := NewService(userRepo, jwtSvc)
	_, _, err := svc.SignUp(context.Background(), CredentialsRequest{
		Username: "alice",
		Password: "pw1234",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "Create")
}

func TestService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: string(hash),
	}, nil)
	jwtSvc.On("GenerateToken", int64(42)).Return("fake-jwt-token", nil)

	svc := NewService(userRepo, jwtSvc)
	user, token, err := svc.Login(context.Background(), CredentialsRequest{
		Username: "alice",
		Password: "pw123456",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "fake-jwt-token", token)
	assert.Empty(t, user.PasswordHash)
}

func TestService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(userRepo, jwtSvc)
	_, _, err := svc.Login(context.Background(), CredentialsRequest{
		Username: "ghost",
		Password: "whatever1",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: string(hash),
	}, nil)

	svc := NewService(userRepo, jwtSvc)
	_, _, err := svc.Login(context.Background(), CredentialsRequest{
		Username: "alice",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	jwtSvc.AssertNotCalled(t, "GenerateToken")
}
