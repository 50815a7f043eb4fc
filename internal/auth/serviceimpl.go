package auth

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/fonarev/gopherwallet.git/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 10 * time.Hour

type AService struct {
	uConn  storage.DatabaseUsers
	txm    storage.TxManager
	secret []byte
}

func NewAService(uConn storage.DatabaseUsers, txm storage.TxManager, secret []byte) *AService {
	return &AService{
		uConn:  uConn,
		txm:    txm,
		secret: secret,
	}
}

// newAccountNumber derives a 12-digit account number from a fresh UUID.
func newAccountNumber() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) % 1_000_000_000_000
	return fmt.Sprintf("%012d", n)
}

func (a *AService) Register(ctx context.Context, login, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = a.txm.RunInTx(ctx, func(ctx context.Context) error {
		uid, err := a.uConn.CreateUser(ctx, login, string(hash))
		if err != nil {
			return err
		}
		user = models.User{ID: uid, Login: login}
		return a.uConn.CreateWallet(ctx, uid, newAccountNumber())
	})
	if err != nil {
		return "", err
	}
	return a.GetJWT(user)
}

func (a *AService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := a.uConn.GetUserByLogin(ctx, login)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Debug("can not validate user creds")
		return "", models.ErrWrongCredentials
	}
	return a.GetJWT(user)
}

func (a *AService) GetJWT(user models.User) (string, error) {
	claims := &models.Claims{
		UserID:   user.ID,
		Username: user.Login,
		Admin:    user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (a *AService) ClaimsFromJWT(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %v", token.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*models.Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
