package models

import "errors"

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrWrongCredentials  = errors.New("wrong credentials")

	ErrWalletNotFound    = errors.New("wallet not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient available balance")
	ErrInvalidAmount     = errors.New("invalid amount")

	ErrRequestNotFound   = errors.New("withdrawal request not found")
	ErrRequestNotPending = errors.New("withdrawal request is not pending")

	ErrTransferToSelf = errors.New("transfer to own account")

	ErrNoData = errors.New("no data")
)
