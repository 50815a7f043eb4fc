package auth_test

import (
	"context"
	"testing"

	"github.com/fonarev/gopherwallet.git/internal/auth"
	"github.com/fonarev/gopherwallet.git/internal/mocks"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

func setupTxManager(txm *mocks.TxManager) {
	txm.
		On("RunInTx", mock.Anything, mock.AnythingOfType("func(context.Context) error")).
		Return(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestRegister_CreatesUserAndWallet(t *testing.T) {
	users := new(mocks.DatabaseUsers)
	txm := new(mocks.TxManager)
	setupTxManager(txm)
	s := auth.NewAService(users, txm, testSecret)

	users.On("CreateUser", mock.Anything, "bob", mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")) == nil
	})).Return(7, nil)
	users.On("CreateWallet", mock.Anything, 7, mock.MatchedBy(func(account string) bool {
		return len(account) == 12
	})).Return(nil)

	token, err := s.Register(context.Background(), "bob", "secret")
	require.NoError(t, err)

	claims, err := s.ClaimsFromJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.False(t, claims.Admin)
	users.AssertExpectations(t)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	users := new(mocks.DatabaseUsers)
	txm := new(mocks.TxManager)
	setupTxManager(txm)
	s := auth.NewAService(users, txm, testSecret)

	users.On("CreateUser", mock.Anything, "bob", mock.Anything).
		Return(0, models.ErrUserAlreadyExists)

	_, err := s.Register(context.Background(), "bob", "secret")
	require.ErrorIs(t, err, models.ErrUserAlreadyExists)
	users.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_RoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(mocks.DatabaseUsers)
	s := auth.NewAService(users, new(mocks.TxManager), testSecret)
	users.On("GetUserByLogin", mock.Anything, "bob").
		Return(models.User{ID: 7, Login: "bob", Admin: true, PasswordHash: string(hash)}, nil)

	token, err := s.Login(context.Background(), "bob", "secret")
	require.NoError(t, err)

	claims, err := s.ClaimsFromJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.True(t, claims.Admin)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(mocks.DatabaseUsers)
	s := auth.NewAService(users, new(mocks.TxManager), testSecret)
	users.On("GetUserByLogin", mock.Anything, "bob").
		Return(models.User{ID: 7, Login: "bob", PasswordHash: string(hash)}, nil)

	_, err = s.Login(context.Background(), "bob", "nope")
	require.ErrorIs(t, err, models.ErrWrongCredentials)
}

func TestClaimsFromJWT_RejectsForeignSignature(t *testing.T) {
	signer := auth.NewAService(new(mocks.DatabaseUsers), new(mocks.TxManager), []byte("other-secret"))
	verifier := auth.NewAService(new(mocks.DatabaseUsers), new(mocks.TxManager), testSecret)

	token, err := signer.GetJWT(models.User{ID: 7, Login: "bob"})
	require.NoError(t, err)

	_, err = verifier.ClaimsFromJWT(token)
	assert.Error(t, err)
}

func TestClaimsFromJWT_RejectsGarbage(t *testing.T) {
	s := auth.NewAService(new(mocks.DatabaseUsers), new(mocks.TxManager), testSecret)

	_, err := s.ClaimsFromJWT("not-a-token")
	assert.Error(t, err)
}
