package storage

import (
	"context"

	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DatabaseUsers interface {
	CreateUser(ctx context.Context, login, passwordHash string) (int, error)
	GetUserByLogin(ctx context.Context, login string) (models.User, error)
	CreateWallet(ctx context.Context, userID int, accountNumber string) error
}

type DatabaseWallets interface {
	GetSnapshot(ctx context.Context, userID int) (models.WalletSnapshot, error)
	GetTransactions(ctx context.Context, userID int, limit int) ([]models.WalletTransaction, error)
	// GetBalanceForUpdate locks the wallet row; call only inside RunInTx.
	GetBalanceForUpdate(ctx context.Context, userID int) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, userID int, balance decimal.Decimal) error
	SaveTransaction(ctx context.Context, userID int, tx models.WalletTransaction) error
	GetUserIDByAccount(ctx context.Context, accountNumber string) (int, error)
	GetLoginByUserID(ctx context.Context, userID int) (string, error)
}

type DatabaseRequests interface {
	InsertRequest(ctx context.Context, userID int, req models.WithdrawalRequest) error
	GetRequestsByUser(ctx context.Context, userID int) ([]models.WithdrawalRequest, error)
	// GetRequestForUpdate returns the request and its owner, locking the row.
	GetRequestForUpdate(ctx context.Context, id uuid.UUID) (models.WithdrawalRequest, int, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status models.RequestStatus, adminMessage string) error
	GetPendingSum(ctx context.Context, userID int) (decimal.Decimal, error)
}

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
