package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fonarev/gopherwallet.git/internal/auth"
	"github.com/fonarev/gopherwallet.git/internal/httpserver/middleware"
	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/fonarev/gopherwallet.git/internal/stream"
	"github.com/fonarev/gopherwallet.git/internal/wallets"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handlers struct {
	authSrv   auth.AuthService
	walletSrv wallets.WalletService
	hub       *stream.Hub
}

func NewHandlers(authSrv auth.AuthService, walletSrv wallets.WalletService, hub *stream.Hub) *Handlers {
	return &Handlers{authSrv: authSrv, walletSrv: walletSrv, hub: hub}
}

func sendJSON(rw http.ResponseWriter, code int, data any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	if err := json.NewEncoder(rw).Encode(data); err != nil {
		logger.Log.Warn("response encode failed", zap.Error(err))
	}
}

type okResponse struct {
	OK bool `json:"ok"`
}

type errResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func sendError(rw http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, models.ErrWalletNotFound),
		errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrAccountNotFound):
		code = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrRequestNotPending),
		errors.Is(err, models.ErrUserAlreadyExists):
		code = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrTransferToSelf):
		code = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, models.ErrWrongCredentials):
		code = http.StatusUnauthorized
		msg = err.Error()
	default:
		logger.Log.Error("request failed", zap.Error(err))
	}

	sendJSON(rw, code, errResponse{OK: false, Error: msg})
}

func setAuthCookie(rw http.ResponseWriter, token string) {
	http.SetCookie(rw, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *Handlers) RegisterHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("RegisterHandler called")
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Login == "" || req.Password == "" {
		sendJSON(rw, http.StatusBadRequest, errResponse{Error: "login and password required"})
		return
	}
	token, err := h.authSrv.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		sendError(rw, err)
		return
	}
	setAuthCookie(rw, token)
	sendJSON(rw, http.StatusOK, okResponse{OK: true})
}

func (h *Handlers) LoginHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("LoginHandler called")
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(rw, http.StatusBadRequest, errResponse{Error: "invalid request body"})
		return
	}
	token, err := h.authSrv.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		sendError(rw, err)
		return
	}
	setAuthCookie(rw, token)
	sendJSON(rw, http.StatusOK, okResponse{OK: true})
}

type walletResponse struct {
	OK           bool                       `json:"ok"`
	Wallet       models.WalletSnapshot      `json:"wallet"`
	Transactions []models.WalletTransaction `json:"transactions"`
}

func (h *Handlers) GetWalletHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("GetWalletHandler called")
	snapshot, transactions, err := h.walletSrv.GetSnapshot(r.Context(), middleware.UIDFromRequest(r))
	if err != nil {
		sendError(rw, err)
		return
	}
	sendJSON(rw, http.StatusOK, walletResponse{OK: true, Wallet: snapshot, Transactions: transactions})
}

type requestsResponse struct {
	OK       bool                       `json:"ok"`
	Requests []models.WithdrawalRequest `json:"requests"`
}

func (h *Handlers) GetRequestsHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("GetRequestsHandler called")
	requests, err := h.walletSrv.GetRequests(r.Context(), middleware.UIDFromRequest(r))
	if err != nil {
		sendError(rw, err)
		return
	}
	sendJSON(rw, http.StatusOK, requestsResponse{OK: true, Requests: requests})
}

func (h *Handlers) CancelRequestHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("CancelRequestHandler called")
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendJSON(rw, http.StatusBadRequest, errResponse{Error: "invalid request id"})
		return
	}
	if err := h.walletSrv.CancelRequest(r.Context(), middleware.UIDFromRequest(r), id); err != nil {
		sendError(rw, err)
		return
	}
	sendJSON(rw, http.StatusOK, okResponse{OK: true})
}

type amountRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	ToAccount   string          `json:"toAccount,omitempty"`
}

func (h *Handlers) DepositHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("DepositHandler called")
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(rw, http.StatusBadRequest, errResponse{Error: "invalid request body"})
		return
	}
	if err := h.walletSrv.Deposit(r.Context(), middleware.UIDFromRequest(r), req.Amount, req.Description); err != nil {
		sendError(rw, err)
		return
	}
	sendJSON(rw, http.StatusOK, okResponse{OK: true})
}

func (h *Handlers) WithdrawHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("WithdrawHandler called")
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(rw, http.StatusBadRequest, errResponse{Error: "invalid request body"})
		return
	}
	created, err := h.walletSrv.SubmitWithdrawal(r.Context(), middleware.UIDFromRequest(r), req.Amount)
	if err != nil {
		sendError(rw, err)
		return
	}
	sendJSON(rw, http.StatusOK, struct {
		OK      bool                     `json:"ok"`
		Request models.WithdrawalRequest `json:"request"`
	}{OK: true, Request: created})
}

func (h *Handlers) TransferHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("TransferHandler called")
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(rw, http.StatusBadRequest, errResponse{Error: "invalid request body"})
		return
	}
	if req.ToAccount == "" {
		sendJSON(rw, http.StatusBadRequest, errResponse{Error: "receiver account required"})
		return
	}
	err := h.walletSrv.Transfer(r.Context(), middleware.UIDFromRequest(r), req.ToAccount, req.Amount, req.Description)
	if err != nil {
		sendError(rw, err)
		return
	}
	sendJSON(rw, http.StatusOK, okResponse{OK: true})
}

type adminMessageRequest struct {
	Message string `json:"message,omitempty"`
}

func (h *Handlers) ApproveRequestHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("ApproveRequestHandler called")
	h.resolveRequest(rw, r, h.walletSrv.ApproveRequest)
}

func (h *Handlers) RejectRequestHandler(rw http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("RejectRequestHandler called")
	h.resolveRequest(rw, r, h.walletSrv.RejectRequest)
}

func (h *Handlers) resolveRequest(rw http.ResponseWriter, r *http.Request,
	resolve func(ctx context.Context, id uuid.UUID, message string) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendJSON(rw, http.StatusBadRequest, errResponse{Error: "invalid request id"})
		return
	}
	var req adminMessageRequest
	if r.Body != nil {
		// message body is optional
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if err := resolve(r.Context(), id, req.Message); err != nil {
		sendError(rw, err)
		return
	}
	sendJSON(rw, http.StatusOK, okResponse{OK: true})
}
