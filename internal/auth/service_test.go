package auth

import (
	"context"
	"testing"
	"time"

	"waitly/internal/shared/config"
	"waitly/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	createUserFn         func(ctx context.Context, user *users.User) error
	getUserByEmailFn     func(ctx context.Context, email string) (*users.User, error)
	getUserByIDFn        func(ctx context.Context, id string) (*users.User, error)
	updateUserPasswordFn func(ctx context.Context, userID, hashedPassword string) error
	emailExistsFn        func(ctx context.Context, email string) (bool, error)
	usernameExistsFn     func(ctx context.Context, username string) (bool, error)
}

func (m *mockRepository) CreateUser(ctx context.Context, user *users.User) error {
	return m.createUserFn(ctx, user)
}

func (m *mockRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	return m.getUserByEmailFn(ctx, email)
}

func (m *mockRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	return m.getUserByIDFn(ctx, id)
}

func (m *mockRepository) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	return m.updateUserPasswordFn(ctx, userID, hashedPassword)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}

func (m *mockRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return m.usernameExistsFn(ctx, username)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     time.Hour,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func TestRegister_DefaultsToCustomerRole(t *testing.T) {
	var created *users.User
	repo := &mockRepository{
		emailExistsFn:    func(ctx context.Context, email string) (bool, error) { return false, nil },
		usernameExistsFn: func(ctx context.Context, username string) (bool, error) { return false, nil },
		createUserFn: func(ctx context.Context, user *users.User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}

	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "newuser",
		Email:    "new@waitly.io",
		Password: "password123",
		Role:     "superhero", // unknown role falls back to customer
	})
	require.NoError(t, err)

	assert.Equal(t, users.RoleCustomer, created.Role)
	assert.Equal(t, "newuser", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// stored password must be a bcrypt hash, not the plaintext
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
}

func TestRegister_AcceptsStaffRole(t *testing.T) {
	var created *users.User
	repo := &mockRepository{
		emailExistsFn:    func(ctx context.Context, email string) (bool, error) { return false, nil },
		usernameExistsFn: func(ctx context.Context, username string) (bool, error) { return false, nil },
		createUserFn: func(ctx context.Context, user *users.User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}

	svc := NewService(repo, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "owner",
		Email:    "owner@waitly.io",
		Password: "password123",
		Role:     "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, users.RoleStaff, created.Role)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	repo := &mockRepository{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}

	svc := NewService(repo, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "dupe",
		Email:    "taken@waitly.io",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &mockRepository{
		getUserByEmailFn: func(ctx context.Context, email string) (*users.User, error) {
			return &users.User{
				ID:       uuid.New(),
				Email:    email,
				Password: string(hashed),
				Role:     users.RoleCustomer,
			}, nil
		},
	}

	svc := NewService(repo, testConfig())

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "a@waitly.io", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	repo := &mockRepository{
		getUserByEmailFn: func(ctx context.Context, email string) (*users.User, error) {
			return nil, ErrUserNotFound
		},
	}

	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "ghost@waitly.io", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{
		emailExistsFn:    func(ctx context.Context, email string) (bool, error) { return false, nil },
		usernameExistsFn: func(ctx context.Context, username string) (bool, error) { return false, nil },
		createUserFn: func(ctx context.Context, user *users.User) error {
			user.ID = userID
			return nil
		},
	}

	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "tokenuser",
		Email:    "token@waitly.io",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "token@waitly.io", claims.Email)
	assert.Equal(t, string(users.RoleCustomer), claims.Role)
	assert.Equal(t, "access", claims.Type)
}
