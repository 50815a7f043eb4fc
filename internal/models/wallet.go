package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit     TransactionType = "deposit"
	TransactionWithdraw    TransactionType = "withdraw"
	TransactionTransferIn  TransactionType = "transfer_in"
	TransactionTransferOut TransactionType = "transfer_out"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

type WalletSnapshot struct {
	Balance            decimal.Decimal `json:"balance"`
	AccountNumber      string          `json:"accountNumber"`
	PendingWithdrawals decimal.Decimal `json:"pendingWithdrawals"`
	AvailableBalance   decimal.Decimal `json:"availableBalance"`
}

// NewWalletSnapshot derives the available balance; snapshots are never
// mutated field by field, only replaced wholesale.
func NewWalletSnapshot(balance, pending decimal.Decimal, accountNumber string) WalletSnapshot {
	return WalletSnapshot{
		Balance:            balance,
		AccountNumber:      accountNumber,
		PendingWithdrawals: pending,
		AvailableBalance:   balance.Sub(pending),
	}
}

type WalletTransaction struct {
	ID           uuid.UUID       `json:"id"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type WithdrawalRequest struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Status       RequestStatus   `json:"status"`
	AdminMessage string          `json:"adminMessage,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Terminal reports whether the request can no longer change state.
func (r WithdrawalRequest) Terminal() bool {
	return r.Status != RequestPending
}
