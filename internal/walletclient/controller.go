package walletclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	pollInterval   = 5 * time.Second
	reconnectDelay = 10 * time.Second
)

type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Controller owns the client-side wallet view and guarantees the user is
// notified of every balance-affecting change exactly once, whether it
// arrived over the push channel or was detected by the polling fallback.
//
// The push channel and the polling ticker are mutually exclusive: polling
// starts only when the channel drops and stops the moment it reopens.
type Controller struct {
	api    WalletAPI
	dialer StreamDialer
	sched  Scheduler
	sink   NotificationSink
	prefs  Preferences
	money  *MoneyFormatter

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	state        ConnState
	snapshot     models.WalletSnapshot
	transactions []models.WalletTransaction
	requests     []models.WithdrawalRequest
	lastKnown    decimal.Decimal
	hasKnown     bool
	loading      bool
	gen          uint64
	poll         TimerHandle
	reconnect    TimerHandle
	source       EventSource
	closed       bool
}

func NewController(api WalletAPI, dialer StreamDialer, sched Scheduler,
	sink NotificationSink, prefs Preferences) *Controller {
	return &Controller{
		api:    api,
		dialer: dialer,
		sched:  sched,
		sink:   sink,
		prefs:  prefs,
		money:  NewMoneyFormatter(prefs.Language()),
	}
}

// Start performs the initial refresh and opens the push channel.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.ctx != nil {
		c.mu.Unlock()
		return
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	c.Refresh(c.ctx, false)
	c.connectStream()
}

// Close tears the controller down: push connection, polling ticker and
// reconnect timer are all released and no state update is applied after.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.gen++ // invalidate in-flight refreshes
	source := c.source
	c.source = nil
	c.stopPollingLocked()
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	c.state = StateDisconnected
	cancel := c.cancel
	c.mu.Unlock()

	if source != nil {
		source.Close()
	}
	if cancel != nil {
		cancel()
	}
}

// Refresh fetches the wallet and withdrawal requests and replaces local
// state wholesale; the server always wins. While the push channel is
// down, a balance change detected here produces the notification the
// missing push event would have carried.
func (c *Controller) Refresh(ctx context.Context, silent bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	if !silent {
		c.loading = true
	}
	c.mu.Unlock()

	snapshot, transactions, err := c.api.GetWallet(ctx)
	var requests []models.WithdrawalRequest
	if err == nil {
		requests, err = c.api.GetRequests(ctx)
	}

	c.mu.Lock()
	if !silent {
		c.loading = false
	}
	if c.closed || gen != c.gen {
		// superseded by a newer refresh or torn down
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.mu.Unlock()
		logger.Log.Debug("wallet refresh failed", zap.Error(err))
		return
	}

	var deltaToast string
	if c.state != StateConnected && c.hasKnown && !snapshot.Balance.Equal(c.lastKnown) {
		delta := snapshot.Balance.Sub(c.lastKnown)
		if delta.IsPositive() {
			deltaToast = fmt.Sprintf("Balance increased by %s", c.money.Format(delta))
		} else {
			deltaToast = fmt.Sprintf("Balance decreased by %s", c.money.Format(delta.Neg()))
		}
	}
	c.snapshot = snapshot
	c.transactions = transactions
	c.requests = requests
	c.lastKnown = snapshot.Balance
	c.hasKnown = true
	c.mu.Unlock()

	if deltaToast != "" {
		c.sink.PlaySound()
		c.sink.Toast(deltaToast)
	}
}

// CancelWithdrawal asks the server to cancel a pending request. There is
// no optimistic removal: the request stays visible until the refresh
// after a confirmed cancellation.
func (c *Controller) CancelWithdrawal(ctx context.Context, id uuid.UUID) error {
	if err := c.api.CancelRequest(ctx, id); err != nil {
		c.sink.InlineError(fmt.Sprintf("could not cancel withdrawal: %v", err))
		return err
	}
	c.Refresh(ctx, false)
	return nil
}

func (c *Controller) Deposit(ctx context.Context, amount decimal.Decimal, description string) error {
	if !amount.IsPositive() {
		c.sink.InlineError("amount must be positive")
		return models.ErrInvalidAmount
	}
	if err := c.api.Deposit(ctx, amount, description); err != nil {
		c.sink.InlineError(fmt.Sprintf("deposit failed: %v", err))
		return err
	}
	c.Refresh(ctx, false)
	return nil
}

func (c *Controller) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		c.sink.InlineError("amount must be positive")
		return models.ErrInvalidAmount
	}
	c.mu.Lock()
	available := c.snapshot.AvailableBalance
	c.mu.Unlock()
	if amount.GreaterThan(available) {
		c.sink.InlineError("insufficient available balance")
		return models.ErrInsufficientFunds
	}
	if err := c.api.Withdraw(ctx, amount); err != nil {
		c.sink.InlineError(fmt.Sprintf("withdrawal failed: %v", err))
		return err
	}
	c.Refresh(ctx, false)
	return nil
}

func (c *Controller) Transfer(ctx context.Context, toAccount string, amount decimal.Decimal, description string) error {
	if toAccount == "" {
		c.sink.InlineError("receiver account required")
		return models.ErrAccountNotFound
	}
	if !amount.IsPositive() {
		c.sink.InlineError("amount must be positive")
		return models.ErrInvalidAmount
	}
	c.mu.Lock()
	available := c.snapshot.AvailableBalance
	c.mu.Unlock()
	if amount.GreaterThan(available) {
		c.sink.InlineError("insufficient available balance")
		return models.ErrInsufficientFunds
	}
	if err := c.api.Transfer(ctx, toAccount, amount, description); err != nil {
		c.sink.InlineError(fmt.Sprintf("transfer failed: %v", err))
		return err
	}
	c.Refresh(ctx, false)
	return nil
}

// --- push channel ---

func (c *Controller) connectStream() {
	c.mu.Lock()
	if c.closed || c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	ctx := c.ctx
	c.mu.Unlock()

	go func() {
		source, err := c.dialer.Dial(ctx)
		if err != nil {
			logger.Log.Debug("push channel dial failed", zap.Error(err))
			c.onStreamError()
			return
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			source.Close()
			return
		}
		c.source = source
		c.state = StateConnected
		// push channel takes priority over the fallback
		c.stopPollingLocked()
		c.mu.Unlock()
		logger.Log.Debug("push channel connected")

		c.readLoop(source)
	}()
}

func (c *Controller) readLoop(source EventSource) {
	for {
		event, err := source.Recv()
		if err != nil {
			c.mu.Lock()
			stale := c.closed || c.source != source
			c.mu.Unlock()
			if !stale {
				logger.Log.Debug("push channel lost", zap.Error(err))
				c.onStreamError()
			}
			return
		}
		c.handleEvent(event)
	}
}

// onStreamError drops to the polling fallback and schedules a reconnect.
func (c *Controller) onStreamError() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = StateDisconnected
	source := c.source
	c.source = nil
	if c.poll == nil {
		ctx := c.ctx
		c.poll = c.sched.TickerFunc(pollInterval, func() {
			c.Refresh(ctx, true)
		})
	}
	if c.reconnect == nil {
		c.reconnect = c.sched.AfterFunc(reconnectDelay, func() {
			c.mu.Lock()
			c.reconnect = nil
			c.mu.Unlock()
			c.connectStream()
		})
	}
	c.mu.Unlock()

	if source != nil {
		source.Close()
	}
}

func (c *Controller) stopPollingLocked() {
	if c.poll != nil {
		c.poll.Stop()
		c.poll = nil
	}
}

// handleEvent processes one push event: sound, balance update, toast,
// then a silent refresh to pick up the detail the event does not carry.
func (c *Controller) handleEvent(event models.WalletEvent) {
	switch event.(type) {
	case models.ConnectedEvent:
		logger.Log.Debug("push channel handshake")
		return
	case models.UnknownEvent:
		logger.Log.Debug("unrecognized push event", zap.String("type", event.EventType()))
		return
	}

	c.sink.PlaySound()

	if money, ok := event.(models.MoneyEvent); ok {
		c.mu.Lock()
		if !c.closed {
			c.snapshot = models.NewWalletSnapshot(money.NewBalance(),
				c.snapshot.PendingWithdrawals, c.snapshot.AccountNumber)
			c.lastKnown = money.NewBalance()
			c.hasKnown = true
		}
		c.mu.Unlock()
	}

	if text, ok := c.toastFor(event); ok {
		c.sink.Toast(text)
	}

	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	if ctx != nil {
		c.Refresh(ctx, true)
	}
}

func (c *Controller) toastFor(event models.WalletEvent) (string, bool) {
	switch e := event.(type) {
	case models.DepositEvent:
		return fmt.Sprintf("Deposited %s", c.money.Format(e.Amount)), true
	case models.TransferInEvent:
		return fmt.Sprintf("Received %s from %s", c.money.Format(e.Amount), e.FromUser), true
	case models.TransferOutEvent:
		return fmt.Sprintf("Sent %s to %s", c.money.Format(e.Amount), e.ToUser), true
	case models.WithdrawApprovedEvent:
		return fmt.Sprintf("Withdrawal of %s approved", c.money.Format(e.Amount)), true
	case models.WithdrawRejectedEvent:
		return fmt.Sprintf("Withdrawal of %s rejected", c.money.Format(e.Amount)), true
	}
	return "", false
}

// --- view accessors ---

func (c *Controller) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Snapshot() models.WalletSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

func (c *Controller) Transactions() []models.WalletTransaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transactions
}

func (c *Controller) Requests() []models.WithdrawalRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Polling reports whether the fallback ticker is armed.
func (c *Controller) Polling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poll != nil
}

// RenderedBalance is the display form of the balance, honouring the
// hide-balance preference.
func (c *Controller) RenderedBalance() string {
	c.mu.Lock()
	balance := c.snapshot.Balance
	c.mu.Unlock()
	if c.prefs.HideBalance() {
		return maskedBalance
	}
	return c.money.Format(balance)
}
