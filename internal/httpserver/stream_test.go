package httpserver_test

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/httpserver"
	"github.com/fonarev/gopherwallet.git/internal/httpserver/middleware"
	"github.com/fonarev/gopherwallet.git/internal/mocks"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/fonarev/gopherwallet.git/internal/stream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readFrame reads one SSE frame and returns its data line payload.
func readFrame(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return data
		}
		if after, ok := strings.CutPrefix(line, "data: "); ok {
			data = after
		}
	}
}

func TestWalletEvents_HandshakeThenPush(t *testing.T) {
	authSrv := new(mocks.AuthService)
	authSrv.On("ClaimsFromJWT", "good-token").
		Return(&models.Claims{UserID: 7, Username: "bob"}, nil)

	hub := stream.NewHub()
	h := httpserver.NewHandlers(authSrv, new(mocks.WalletService), hub)
	server := httptest.NewServer(httpserver.NewRouter(h, authSrv))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/user/wallet/events", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "good-token"})

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	handshake := readFrame(t, reader)
	assert.Contains(t, handshake, `"type":"connected"`)

	// the subscriber registers before the handshake is written, so the
	// event published now must arrive on this connection
	hub.Publish(7, models.DepositEvent{
		Amount:  decimal.NewFromInt(5),
		Balance: decimal.NewFromInt(105),
	})

	pushed := readFrame(t, reader)
	assert.Contains(t, pushed, `"type":"deposit"`)
}

func TestWalletEvents_Unauthorized(t *testing.T) {
	authSrv := new(mocks.AuthService)
	h := httpserver.NewHandlers(authSrv, new(mocks.WalletService), stream.NewHub())
	server := httptest.NewServer(httpserver.NewRouter(h, authSrv))
	defer server.Close()

	resp, err := server.Client().Get(server.URL + "/api/user/wallet/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWalletEvents_UnsubscribesOnDisconnect(t *testing.T) {
	authSrv := new(mocks.AuthService)
	authSrv.On("ClaimsFromJWT", "good-token").
		Return(&models.Claims{UserID: 7, Username: "bob"}, nil)

	hub := stream.NewHub()
	h := httpserver.NewHandlers(authSrv, new(mocks.WalletService), hub)
	server := httptest.NewServer(httpserver.NewRouter(h, authSrv))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/user/wallet/events", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "good-token"})

	resp, err := server.Client().Do(req)
	require.NoError(t, err)

	reader := bufio.NewReader(resp.Body)
	readFrame(t, reader)
	require.True(t, hub.Connected(7))

	resp.Body.Close()

	require.Eventually(t, func() bool {
		return !hub.Connected(7)
	}, 2*time.Second, 10*time.Millisecond)
}
