package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/fonarev/gopherwallet.git/internal/auth"
	"github.com/fonarev/gopherwallet.git/internal/logger"
	"go.uber.org/zap"
)

type Service struct {
	apiSrv http.Server
}

func NewService(APIAddr string, h *Handlers, authSrv auth.AuthService) *Service {
	return &Service{
		apiSrv: http.Server{
			Addr:    APIAddr,
			Handler: NewRouter(h, authSrv),
		},
	}
}

func (s *Service) Run() error {
	logger.Log.Info("API Listening at", zap.String("Addr", s.apiSrv.Addr))
	if err := s.apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	return s.apiSrv.Shutdown(ctx)
}
