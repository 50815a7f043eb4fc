package wallets

import (
	"context"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/fonarev/gopherwallet.git/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recentTransactionsLimit = 50

type WService struct {
	users    storage.DatabaseUsers
	wConn    storage.DatabaseWallets
	rConn    storage.DatabaseRequests
	txm      storage.TxManager
	notifier EventPublisher
}

func NewWService(users storage.DatabaseUsers, wConn storage.DatabaseWallets, rConn storage.DatabaseRequests,
	txm storage.TxManager, notifier EventPublisher) *WService {
	return &WService{
		users:    users,
		wConn:    wConn,
		rConn:    rConn,
		txm:      txm,
		notifier: notifier,
	}
}

func (s *WService) GetSnapshot(ctx context.Context, UID int) (models.WalletSnapshot, []models.WalletTransaction, error) {
	snapshot, err := s.wConn.GetSnapshot(ctx, UID)
	if err != nil {
		return models.WalletSnapshot{}, nil, err
	}
	transactions, err := s.wConn.GetTransactions(ctx, UID, recentTransactionsLimit)
	if err != nil {
		return models.WalletSnapshot{}, nil, err
	}
	return snapshot, transactions, nil
}

func (s *WService) GetRequests(ctx context.Context, UID int) ([]models.WithdrawalRequest, error) {
	return s.rConn.GetRequestsByUser(ctx, UID)
}

func (s *WService) Deposit(ctx context.Context, UID int, amount decimal.Decimal, description string) error {
	if !amount.IsPositive() {
		return models.ErrInvalidAmount
	}

	var newBalance decimal.Decimal
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		balance, err := s.wConn.GetBalanceForUpdate(ctx, UID)
		if err != nil {
			return err
		}
		newBalance = balance.Add(amount)
		if err := s.wConn.UpdateBalance(ctx, UID, newBalance); err != nil {
			return err
		}
		return s.wConn.SaveTransaction(ctx, UID, models.WalletTransaction{
			ID:          uuid.New(),
			Type:        models.TransactionDeposit,
			Amount:      amount,
			Description: description,
			CreatedAt:   time.Now(),
		})
	})
	if err != nil {
		return err
	}

	s.publish(ctx, UID, models.DepositEvent{Amount: amount, Balance: newBalance})
	return nil
}

// SubmitWithdrawal records a pending request. The balance stays untouched
// until an admin approves; the pending sum reduces the available balance.
func (s *WService) SubmitWithdrawal(ctx context.Context, UID int, amount decimal.Decimal) (models.WithdrawalRequest, error) {
	if !amount.IsPositive() {
		return models.WithdrawalRequest{}, models.ErrInvalidAmount
	}

	req := models.WithdrawalRequest{
		ID:        uuid.New(),
		Amount:    amount,
		Status:    models.RequestPending,
		CreatedAt: time.Now(),
	}
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		balance, err := s.wConn.GetBalanceForUpdate(ctx, UID)
		if err != nil {
			return err
		}
		pending, err := s.rConn.GetPendingSum(ctx, UID)
		if err != nil {
			return err
		}
		if balance.Sub(pending).LessThan(amount) {
			return models.ErrInsufficientFunds
		}
		return s.rConn.InsertRequest(ctx, UID, req)
	})
	if err != nil {
		return models.WithdrawalRequest{}, err
	}
	return req, nil
}

func (s *WService) CancelRequest(ctx context.Context, UID int, requestID uuid.UUID) error {
	return s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, ownerID, err := s.rConn.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if ownerID != UID {
			return models.ErrRequestNotFound
		}
		if req.Terminal() {
			return models.ErrRequestNotPending
		}
		return s.rConn.UpdateRequestStatus(ctx, requestID, models.RequestCancelled, "")
	})
}

func (s *WService) ApproveRequest(ctx context.Context, requestID uuid.UUID, adminMessage string) error {
	var (
		ownerID    int
		amount     decimal.Decimal
		newBalance decimal.Decimal
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, uid, err := s.rConn.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Terminal() {
			return models.ErrRequestNotPending
		}
		balance, err := s.wConn.GetBalanceForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		if balance.LessThan(req.Amount) {
			return models.ErrInsufficientFunds
		}
		newBalance = balance.Sub(req.Amount)
		if err := s.wConn.UpdateBalance(ctx, uid, newBalance); err != nil {
			return err
		}
		if err := s.rConn.UpdateRequestStatus(ctx, requestID, models.RequestApproved, adminMessage); err != nil {
			return err
		}
		ownerID, amount = uid, req.Amount
		return s.wConn.SaveTransaction(ctx, uid, models.WalletTransaction{
			ID:          uuid.New(),
			Type:        models.TransactionWithdraw,
			Amount:      req.Amount,
			Description: adminMessage,
			CreatedAt:   time.Now(),
		})
	})
	if err != nil {
		return err
	}

	s.publish(ctx, ownerID, models.WithdrawApprovedEvent{
		Amount:  amount,
		Balance: newBalance,
		Message: adminMessage,
	})
	return nil
}

func (s *WService) RejectRequest(ctx context.Context, requestID uuid.UUID, adminMessage string) error {
	var (
		ownerID int
		amount  decimal.Decimal
		balance decimal.Decimal
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		req, uid, err := s.rConn.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Terminal() {
			return models.ErrRequestNotPending
		}
		if err := s.rConn.UpdateRequestStatus(ctx, requestID, models.RequestRejected, adminMessage); err != nil {
			return err
		}
		if balance, err = s.wConn.GetBalanceForUpdate(ctx, uid); err != nil {
			return err
		}
		ownerID, amount = uid, req.Amount
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, ownerID, models.WithdrawRejectedEvent{
		Amount:  amount,
		Balance: balance,
		Message: adminMessage,
	})
	return nil
}

func (s *WService) Transfer(ctx context.Context, UID int, toAccount string, amount decimal.Decimal, description string) error {
	if !amount.IsPositive() {
		return models.ErrInvalidAmount
	}

	var (
		receiverID      int
		senderBalance   decimal.Decimal
		receiverBalance decimal.Decimal
		senderLogin     string
		receiverLogin   string
	)
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		receiverID, err = s.wConn.GetUserIDByAccount(ctx, toAccount)
		if err != nil {
			return err
		}
		if receiverID == UID {
			return models.ErrTransferToSelf
		}

		// Lock both wallets in user-id order to avoid deadlock between
		// two opposite transfers.
		first, second := UID, receiverID
		if receiverID < UID {
			first, second = receiverID, UID
		}
		balances := map[int]decimal.Decimal{}
		for _, uid := range []int{first, second} {
			b, err := s.wConn.GetBalanceForUpdate(ctx, uid)
			if err != nil {
				return err
			}
			balances[uid] = b
		}

		pending, err := s.rConn.GetPendingSum(ctx, UID)
		if err != nil {
			return err
		}
		if balances[UID].Sub(pending).LessThan(amount) {
			return models.ErrInsufficientFunds
		}

		senderBalance = balances[UID].Sub(amount)
		receiverBalance = balances[receiverID].Add(amount)
		if err := s.wConn.UpdateBalance(ctx, UID, senderBalance); err != nil {
			return err
		}
		if err := s.wConn.UpdateBalance(ctx, receiverID, receiverBalance); err != nil {
			return err
		}

		if senderLogin, err = s.wConn.GetLoginByUserID(ctx, UID); err != nil {
			return err
		}
		if receiverLogin, err = s.wConn.GetLoginByUserID(ctx, receiverID); err != nil {
			return err
		}
		now := time.Now()
		if err := s.wConn.SaveTransaction(ctx, UID, models.WalletTransaction{
			ID:           uuid.New(),
			Type:         models.TransactionTransferOut,
			Amount:       amount,
			Description:  description,
			Counterparty: receiverLogin,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		if err := s.wConn.SaveTransaction(ctx, receiverID, models.WalletTransaction{
			ID:           uuid.New(),
			Type:         models.TransactionTransferIn,
			Amount:       amount,
			Description:  description,
			Counterparty: senderLogin,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, UID, models.TransferOutEvent{
		Amount:  amount,
		Balance: senderBalance,
		ToUser:  receiverLogin,
	})
	s.publish(ctx, receiverID, models.TransferInEvent{
		Amount:   amount,
		Balance:  receiverBalance,
		FromUser: senderLogin,
		Message:  description,
	})
	return nil
}

// publish happens after the surrounding transaction commits. A publish
// failure never fails the mutation; polling picks the change up instead.
func (s *WService) publish(ctx context.Context, UID int, event models.WalletEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, UID, event); err != nil {
		logger.Log.Warn("event publish failed",
			zap.Int("uid", UID),
			zap.String("type", event.EventType()),
			zap.Error(err))
	}
}
