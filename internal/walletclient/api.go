// Package walletclient implements the consumer side of the wallet's
// live-balance protocol: a REST client, a push-channel reader and a
// controller that keeps one eventually-consistent view of the wallet.
package walletclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const authCookieName = "auth_token"

// WalletAPI is the REST surface the controller depends on.
type WalletAPI interface {
	GetWallet(ctx context.Context) (models.WalletSnapshot, []models.WalletTransaction, error)
	GetRequests(ctx context.Context) ([]models.WithdrawalRequest, error)
	CancelRequest(ctx context.Context, id uuid.UUID) error
	Deposit(ctx context.Context, amount decimal.Decimal, description string) error
	Withdraw(ctx context.Context, amount decimal.Decimal) error
	Transfer(ctx context.Context, toAccount string, amount decimal.Decimal, description string) error
}

// APIError is a non-2xx response decoded from the {ok:false, error} envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	if token != "" {
		c.SetCookie(&http.Cookie{Name: authCookieName, Value: token})
	}
	return &Client{http: c}
}

type errBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func apiErr(resp *resty.Response, body *errBody) error {
	if resp.IsSuccess() {
		return nil
	}
	msg := body.Error
	if msg == "" {
		msg = resp.Status()
	}
	return &APIError{Status: resp.StatusCode(), Message: msg}
}

func (c *Client) GetWallet(ctx context.Context) (models.WalletSnapshot, []models.WalletTransaction, error) {
	var out struct {
		OK           bool                       `json:"ok"`
		Wallet       models.WalletSnapshot      `json:"wallet"`
		Transactions []models.WalletTransaction `json:"transactions"`
	}
	var errOut errBody
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(&errOut).
		Get("/api/user/wallet")
	if err != nil {
		return models.WalletSnapshot{}, nil, fmt.Errorf("get wallet: %w", err)
	}
	if err := apiErr(resp, &errOut); err != nil {
		return models.WalletSnapshot{}, nil, err
	}
	return out.Wallet, out.Transactions, nil
}

func (c *Client) GetRequests(ctx context.Context) ([]models.WithdrawalRequest, error) {
	var out struct {
		OK       bool                       `json:"ok"`
		Requests []models.WithdrawalRequest `json:"requests"`
	}
	var errOut errBody
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(&errOut).
		Get("/api/user/wallet/requests")
	if err != nil {
		return nil, fmt.Errorf("get requests: %w", err)
	}
	if err := apiErr(resp, &errOut); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

func (c *Client) CancelRequest(ctx context.Context, id uuid.UUID) error {
	var errOut errBody
	resp, err := c.http.R().SetContext(ctx).SetError(&errOut).
		Delete("/api/user/wallet/requests/" + id.String())
	if err != nil {
		return fmt.Errorf("cancel request: %w", err)
	}
	return apiErr(resp, &errOut)
}

func (c *Client) postAmount(ctx context.Context, path string, body any) error {
	var errOut errBody
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetError(&errOut).
		Post(path)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return apiErr(resp, &errOut)
}

func (c *Client) Deposit(ctx context.Context, amount decimal.Decimal, description string) error {
	return c.postAmount(ctx, "/api/user/wallet/deposit", map[string]any{
		"amount":      amount,
		"description": description,
	})
}

func (c *Client) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	return c.postAmount(ctx, "/api/user/wallet/withdraw", map[string]any{
		"amount": amount,
	})
}

func (c *Client) Transfer(ctx context.Context, toAccount string, amount decimal.Decimal, description string) error {
	return c.postAmount(ctx, "/api/user/wallet/transfer", map[string]any{
		"amount":      amount,
		"toAccount":   toAccount,
		"description": description,
	})
}
