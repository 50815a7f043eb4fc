package wallets

import (
	"context"

	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WalletService interface {
	GetSnapshot(ctx context.Context, UID int) (models.WalletSnapshot, []models.WalletTransaction, error)
	GetRequests(ctx context.Context, UID int) ([]models.WithdrawalRequest, error)
	Deposit(ctx context.Context, UID int, amount decimal.Decimal, description string) error
	SubmitWithdrawal(ctx context.Context, UID int, amount decimal.Decimal) (models.WithdrawalRequest, error)
	CancelRequest(ctx context.Context, UID int, requestID uuid.UUID) error
	Transfer(ctx context.Context, UID int, toAccount string, amount decimal.Decimal, description string) error

	ApproveRequest(ctx context.Context, requestID uuid.UUID, adminMessage string) error
	RejectRequest(ctx context.Context, requestID uuid.UUID, adminMessage string) error
}

// EventPublisher delivers a wallet event to the push channel of one user.
type EventPublisher interface {
	Publish(ctx context.Context, UID int, event models.WalletEvent) error
}
