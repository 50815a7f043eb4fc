package auth

import (
	"context"

	"github.com/fonarev/gopherwallet.git/internal/models"
)

type AuthService interface {
	Register(ctx context.Context, login, password string) (token string, err error)
	Login(ctx context.Context, login, password string) (token string, err error)
	GetJWT(user models.User) (tokenString string, err error)
	ClaimsFromJWT(tokenString string) (*models.Claims, error)
}
