package httpserver

import (
	"net/http"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/auth"
	"github.com/fonarev/gopherwallet.git/internal/httpserver/middleware"
	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handlers, authSrv auth.AuthService) chi.Router {
	logger.Log.Debug("Configuring Router")
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           int((5 * time.Minute).Seconds()),
	}))

	requireAuth := middleware.Auth(authSrv)

	r.Get("/health", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte("ok"))
	})

	r.Route("/api/user", func(router chi.Router) {
		router.Post("/register", logger.HandlerWithLogger(h.RegisterHandler))
		router.Post("/login", logger.HandlerWithLogger(h.LoginHandler))

		router.Route("/wallet", func(router chi.Router) {
			router.Use(requireAuth)
			router.Get("/", logger.HandlerWithLogger(h.GetWalletHandler))
			router.Get("/requests", logger.HandlerWithLogger(h.GetRequestsHandler))
			router.Delete("/requests/{id}", logger.HandlerWithLogger(h.CancelRequestHandler))
			router.Post("/deposit", logger.HandlerWithLogger(h.DepositHandler))
			router.Post("/withdraw", logger.HandlerWithLogger(h.WithdrawHandler))
			router.Post("/transfer", logger.HandlerWithLogger(h.TransferHandler))
			// SSE endpoint stays outside the logging wrapper, the request
			// only completes when the client disconnects.
			router.Get("/events", h.WalletEventsHandler)
		})
	})

	r.Route("/api/admin", func(router chi.Router) {
		router.Use(requireAuth, middleware.RequireAdmin)
		router.Post("/requests/{id}/approve", logger.HandlerWithLogger(h.ApproveRequestHandler))
		router.Post("/requests/{id}/reject", logger.HandlerWithLogger(h.RejectRequestHandler))
	})

	logger.Log.Info("Successfully initialized Router")
	return r
}
