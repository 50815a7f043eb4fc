package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Event types carried on the push channel.
const (
	EventConnected        = "connected"
	EventDeposit          = "deposit"
	EventTransferIn       = "transfer_in"
	EventTransferOut      = "transfer_out"
	EventWithdrawApproved = "withdraw_approved"
	EventWithdrawRejected = "withdraw_rejected"
)

// WalletEvent is the sum type for push-channel payloads. Each variant
// carries its fields explicitly instead of a loose map keyed by "type".
type WalletEvent interface {
	EventType() string
}

type ConnectedEvent struct{}

func (ConnectedEvent) EventType() string { return EventConnected }

type DepositEvent struct {
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

func (DepositEvent) EventType() string { return EventDeposit }

type TransferInEvent struct {
	Amount   decimal.Decimal `json:"amount"`
	Balance  decimal.Decimal `json:"balance"`
	FromUser string          `json:"fromUser"`
	Message  string          `json:"message,omitempty"`
}

func (TransferInEvent) EventType() string { return EventTransferIn }

type TransferOutEvent struct {
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	ToUser  string          `json:"toUser"`
}

func (TransferOutEvent) EventType() string { return EventTransferOut }

type WithdrawApprovedEvent struct {
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Message string          `json:"message,omitempty"`
}

func (WithdrawApprovedEvent) EventType() string { return EventWithdrawApproved }

type WithdrawRejectedEvent struct {
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Message string          `json:"message,omitempty"`
}

func (WithdrawRejectedEvent) EventType() string { return EventWithdrawRejected }

// UnknownEvent preserves the raw type of a payload the client does not
// recognize. Consumers log it and move on; it never drives a notification.
type UnknownEvent struct {
	Type string
}

func (e UnknownEvent) EventType() string { return e.Type }

// MoneyEvent is implemented by every variant that carries a new balance.
type MoneyEvent interface {
	WalletEvent
	NewBalance() decimal.Decimal
	EventAmount() decimal.Decimal
}

func (e DepositEvent) NewBalance() decimal.Decimal          { return e.Balance }
func (e DepositEvent) EventAmount() decimal.Decimal         { return e.Amount }
func (e TransferInEvent) NewBalance() decimal.Decimal       { return e.Balance }
func (e TransferInEvent) EventAmount() decimal.Decimal      { return e.Amount }
func (e TransferOutEvent) NewBalance() decimal.Decimal      { return e.Balance }
func (e TransferOutEvent) EventAmount() decimal.Decimal     { return e.Amount }
func (e WithdrawApprovedEvent) NewBalance() decimal.Decimal { return e.Balance }
func (e WithdrawApprovedEvent) EventAmount() decimal.Decimal {
	return e.Amount
}
func (e WithdrawRejectedEvent) NewBalance() decimal.Decimal { return e.Balance }
func (e WithdrawRejectedEvent) EventAmount() decimal.Decimal {
	return e.Amount
}

// eventEnvelope is the wire shape shared by every event type.
type eventEnvelope struct {
	Type     string           `json:"type"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	FromUser string           `json:"fromUser,omitempty"`
	ToUser   string           `json:"toUser,omitempty"`
	Message  string           `json:"message,omitempty"`
}

func EncodeEvent(ev WalletEvent) ([]byte, error) {
	env := eventEnvelope{Type: ev.EventType()}
	switch e := ev.(type) {
	case ConnectedEvent:
	case DepositEvent:
		env.Amount, env.Balance = &e.Amount, &e.Balance
	case TransferInEvent:
		env.Amount, env.Balance = &e.Amount, &e.Balance
		env.FromUser = e.FromUser
		env.Message = e.Message
	case TransferOutEvent:
		env.Amount, env.Balance = &e.Amount, &e.Balance
		env.ToUser = e.ToUser
	case WithdrawApprovedEvent:
		env.Amount, env.Balance = &e.Amount, &e.Balance
		env.Message = e.Message
	case WithdrawRejectedEvent:
		env.Amount, env.Balance = &e.Amount, &e.Balance
		env.Message = e.Message
	default:
		return nil, fmt.Errorf("encode event: unsupported type %q", ev.EventType())
	}
	return json.Marshal(env)
}

func DecodeEvent(data []byte) (WalletEvent, error) {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	amount := decimal.Zero
	if env.Amount != nil {
		amount = *env.Amount
	}
	balance := decimal.Zero
	if env.Balance != nil {
		balance = *env.Balance
	}

	switch env.Type {
	case EventConnected:
		return ConnectedEvent{}, nil
	case EventDeposit:
		return DepositEvent{Amount: amount, Balance: balance}, nil
	case EventTransferIn:
		return TransferInEvent{Amount: amount, Balance: balance, FromUser: env.FromUser, Message: env.Message}, nil
	case EventTransferOut:
		return TransferOutEvent{Amount: amount, Balance: balance, ToUser: env.ToUser}, nil
	case EventWithdrawApproved:
		return WithdrawApprovedEvent{Amount: amount, Balance: balance, Message: env.Message}, nil
	case EventWithdrawRejected:
		return WithdrawRejectedEvent{Amount: amount, Balance: balance, Message: env.Message}, nil
	default:
		return UnknownEvent{Type: env.Type}, nil
	}
}
