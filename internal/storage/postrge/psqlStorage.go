package postrge

import (
	"context"
	"errors"
	"fmt"

	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/fonarev/gopherwallet.git/internal/storage/txctx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolationCode = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every SQL
// method is written once and transparently joins an open transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PsqlStorage struct {
	pool *pgxpool.Pool
}

func NewPsqlStorage(conn *Connection) *PsqlStorage {
	return &PsqlStorage{pool: conn.Pool()}
}

func (s *PsqlStorage) q(ctx context.Context) querier {
	if tx, ok := txctx.Extract(ctx); ok {
		return tx
	}
	return s.pool
}

func scanDecimal(raw string, what string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s: %w", what, err)
	}
	return d, nil
}

// --- users ---

func (s *PsqlStorage) CreateUser(ctx context.Context, login, passwordHash string) (int, error) {
	var id int
	err := s.q(ctx).QueryRow(ctx, insertUserQuery, login, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, models.ErrUserAlreadyExists
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (s *PsqlStorage) GetUserByLogin(ctx context.Context, login string) (models.User, error) {
	var u models.User
	err := s.q(ctx).QueryRow(ctx, getUserByLogin, login).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, models.ErrWrongCredentials
		}
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *PsqlStorage) GetLoginByUserID(ctx context.Context, userID int) (string, error) {
	var login string
	err := s.q(ctx).QueryRow(ctx, getLoginByUID, userID).Scan(&login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.ErrAccountNotFound
		}
		return "", fmt.Errorf("get login: %w", err)
	}
	return login, nil
}

func (s *PsqlStorage) CreateWallet(ctx context.Context, userID int, accountNumber string) error {
	if _, err := s.q(ctx).Exec(ctx, insertWalletQuery, userID, accountNumber); err != nil {
		return fmt.Errorf("create wallet: %w", err)
	}
	return nil
}

// --- wallets ---

func (s *PsqlStorage) GetSnapshot(ctx context.Context, userID int) (models.WalletSnapshot, error) {
	var rawBalance, account, rawPending string
	err := s.q(ctx).QueryRow(ctx, getSnapshotQuery, userID).
		Scan(&rawBalance, &account, &rawPending)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.WalletSnapshot{}, models.ErrWalletNotFound
		}
		return models.WalletSnapshot{}, fmt.Errorf("get snapshot: %w", err)
	}

	balance, err := scanDecimal(rawBalance, "balance")
	if err != nil {
		return models.WalletSnapshot{}, err
	}
	pending, err := scanDecimal(rawPending, "pending sum")
	if err != nil {
		return models.WalletSnapshot{}, err
	}
	return models.NewWalletSnapshot(balance, pending, account), nil
}

func (s *PsqlStorage) GetBalanceForUpdate(ctx context.Context, userID int) (decimal.Decimal, error) {
	var raw string
	err := s.q(ctx).QueryRow(ctx, getBalanceForUpdateQuery, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, models.ErrWalletNotFound
		}
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return scanDecimal(raw, "balance")
}

func (s *PsqlStorage) UpdateBalance(ctx context.Context, userID int, balance decimal.Decimal) error {
	if _, err := s.q(ctx).Exec(ctx, updateBalanceQuery, balance.String(), userID); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

func (s *PsqlStorage) GetUserIDByAccount(ctx context.Context, accountNumber string) (int, error) {
	var id int
	err := s.q(ctx).QueryRow(ctx, getUIDByAccountQuery, accountNumber).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrAccountNotFound
		}
		return 0, fmt.Errorf("get user by account: %w", err)
	}
	return id, nil
}

func (s *PsqlStorage) SaveTransaction(ctx context.Context, userID int, t models.WalletTransaction) error {
	_, err := s.q(ctx).Exec(ctx, insertTransactionQuery,
		t.ID, userID, string(t.Type), t.Amount.String(), t.Description, t.Counterparty, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	return nil
}

func (s *PsqlStorage) GetTransactions(ctx context.Context, userID int, limit int) ([]models.WalletTransaction, error) {
	rows, err := s.q(ctx).Query(ctx, getTransactionsQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.WalletTransaction, 0)
	for rows.Next() {
		var t models.WalletTransaction
		var rawAmount string
		if err := rows.Scan(&t.ID, &t.Type, &rawAmount, &t.Description, &t.Counterparty, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Amount, err = scanDecimal(rawAmount, "amount"); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// --- withdrawal requests ---

func (s *PsqlStorage) InsertRequest(ctx context.Context, userID int, req models.WithdrawalRequest) error {
	_, err := s.q(ctx).Exec(ctx, insertRequestQuery,
		req.ID, userID, req.Amount.String(), string(req.Status), req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (s *PsqlStorage) GetRequestsByUser(ctx context.Context, userID int) ([]models.WithdrawalRequest, error) {
	rows, err := s.q(ctx).Query(ctx, getRequestsByUserQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	requests := make([]models.WithdrawalRequest, 0)
	for rows.Next() {
		var r models.WithdrawalRequest
		var rawAmount string
		if err := rows.Scan(&r.ID, &rawAmount, &r.Status, &r.AdminMessage, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		if r.Amount, err = scanDecimal(rawAmount, "amount"); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return requests, nil
}

func (s *PsqlStorage) GetRequestForUpdate(ctx context.Context, id uuid.UUID) (models.WithdrawalRequest, int, error) {
	var r models.WithdrawalRequest
	var userID int
	var rawAmount string
	err := s.q(ctx).QueryRow(ctx, getRequestForUpdateQuery, id).
		Scan(&r.ID, &userID, &rawAmount, &r.Status, &r.AdminMessage, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.WithdrawalRequest{}, 0, models.ErrRequestNotFound
		}
		return models.WithdrawalRequest{}, 0, fmt.Errorf("get request: %w", err)
	}
	if r.Amount, err = scanDecimal(rawAmount, "amount"); err != nil {
		return models.WithdrawalRequest{}, 0, err
	}
	return r, userID, nil
}

func (s *PsqlStorage) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status models.RequestStatus, adminMessage string) error {
	if _, err := s.q(ctx).Exec(ctx, updateRequestStatusQuery, string(status), adminMessage, id); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

func (s *PsqlStorage) GetPendingSum(ctx context.Context, userID int) (decimal.Decimal, error) {
	var raw string
	if err := s.q(ctx).QueryRow(ctx, getPendingSumQuery, userID).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("get pending sum: %w", err)
	}
	return scanDecimal(raw, "pending sum")
}
