package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fonarev/gopherwallet.git/internal/httpserver"
	"github.com/fonarev/gopherwallet.git/internal/httpserver/middleware"
	"github.com/fonarev/gopherwallet.git/internal/mocks"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/fonarev/gopherwallet.git/internal/stream"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type env struct {
	authSrv   *mocks.AuthService
	walletSrv *mocks.WalletService
	server    *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		authSrv:   new(mocks.AuthService),
		walletSrv: new(mocks.WalletService),
	}
	h := httpserver.NewHandlers(e.authSrv, e.walletSrv, stream.NewHub())
	e.server = httptest.NewServer(httpserver.NewRouter(h, e.authSrv))
	t.Cleanup(e.server.Close)
	return e
}

func (e *env) asUser(uid int, admin bool) {
	e.authSrv.On("ClaimsFromJWT", "good-token").
		Return(&models.Claims{UserID: uid, Username: "bob", Admin: admin}, nil)
}

func (e *env) do(t *testing.T, method, path string, body any, authed bool) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	if authed {
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "good-token"})
	}
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRegister_SetsCookie(t *testing.T) {
	e := newEnv(t)
	e.authSrv.On("Register", mock.Anything, "bob", "secret").Return("new-token", nil)

	resp := e.do(t, http.MethodPost, "/api/user/register",
		map[string]string{"login": "bob", "password": "secret"}, false)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AuthCookieName && c.Value == "new-token" {
			found = true
		}
	}
	assert.True(t, found, "auth cookie not set")
}

func TestRegister_Conflict(t *testing.T) {
	e := newEnv(t)
	e.authSrv.On("Register", mock.Anything, "bob", "secret").
		Return("", models.ErrUserAlreadyExists)

	resp := e.do(t, http.MethodPost, "/api/user/register",
		map[string]string{"login": "bob", "password": "secret"}, false)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_WrongCredentials(t *testing.T) {
	e := newEnv(t)
	e.authSrv.On("Login", mock.Anything, "bob", "bad").
		Return("", models.ErrWrongCredentials)

	resp := e.do(t, http.MethodPost, "/api/user/login",
		map[string]string{"login": "bob", "password": "bad"}, false)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetWallet_Unauthorized(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/api/user/wallet/", nil, false)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetWallet_Success(t *testing.T) {
	e := newEnv(t)
	e.asUser(7, false)
	snapshot := models.NewWalletSnapshot(dec("100"), dec("30"), "000012345678")
	e.walletSrv.On("GetSnapshot", mock.Anything, 7).
		Return(snapshot, []models.WalletTransaction{{Type: models.TransactionDeposit, Amount: dec("100")}}, nil)

	resp := e.do(t, http.MethodGet, "/api/user/wallet/", nil, true)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		OK     bool                  `json:"ok"`
		Wallet models.WalletSnapshot `json:"wallet"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.OK)
	assert.True(t, body.Wallet.AvailableBalance.Equal(dec("70")))
}

func TestDeposit_Success(t *testing.T) {
	e := newEnv(t)
	e.asUser(7, false)
	e.walletSrv.On("Deposit", mock.Anything, 7, mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(dec("5"))
	}), "top-up").Return(nil)

	resp := e.do(t, http.MethodPost, "/api/user/wallet/deposit",
		map[string]string{"amount": "5", "description": "top-up"}, true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	e.walletSrv.AssertExpectations(t)
}

func TestWithdraw_Insufficient(t *testing.T) {
	e := newEnv(t)
	e.asUser(7, false)
	e.walletSrv.On("SubmitWithdrawal", mock.Anything, 7, mock.Anything).
		Return(models.WithdrawalRequest{}, models.ErrInsufficientFunds)

	resp := e.do(t, http.MethodPost, "/api/user/wallet/withdraw",
		map[string]string{"amount": "9000"}, true)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTransfer_MissingReceiver(t *testing.T) {
	e := newEnv(t)
	e.asUser(7, false)

	resp := e.do(t, http.MethodPost, "/api/user/wallet/transfer",
		map[string]string{"amount": "5"}, true)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e.walletSrv.AssertNotCalled(t, "Transfer",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelRequest_NotPending(t *testing.T) {
	e := newEnv(t)
	e.asUser(7, false)
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	e.walletSrv.On("CancelRequest", mock.Anything, 7, id).
		Return(models.ErrRequestNotPending)

	resp := e.do(t, http.MethodDelete, "/api/user/wallet/requests/"+id.String(), nil, true)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCancelRequest_BadID(t *testing.T) {
	e := newEnv(t)
	e.asUser(7, false)

	resp := e.do(t, http.MethodDelete, "/api/user/wallet/requests/not-a-uuid", nil, true)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApprove_RequiresAdmin(t *testing.T) {
	e := newEnv(t)
	e.asUser(7, false)
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	resp := e.do(t, http.MethodPost, "/api/admin/requests/"+id.String()+"/approve",
		map[string]string{"message": "ok"}, true)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	e.walletSrv.AssertNotCalled(t, "ApproveRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestApprove_AsAdmin(t *testing.T) {
	e := newEnv(t)
	e.asUser(1, true)
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	e.walletSrv.On("ApproveRequest", mock.Anything, id, "done").Return(nil)

	resp := e.do(t, http.MethodPost, "/api/admin/requests/"+id.String()+"/approve",
		map[string]string{"message": "done"}, true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	e.walletSrv.AssertExpectations(t)
}

func TestReject_AsAdmin(t *testing.T) {
	e := newEnv(t)
	e.asUser(1, true)
	id := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	e.walletSrv.On("RejectRequest", mock.Anything, id, "limits").Return(nil)

	resp := e.do(t, http.MethodPost, "/api/admin/requests/"+id.String()+"/reject",
		map[string]string{"message": "limits"}, true)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	e.walletSrv.AssertExpectations(t)
}
