package models_test

import (
	"testing"

	"github.com/fonarev/gopherwallet.git/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewWalletSnapshot_AvailableBalance(t *testing.T) {
	snapshot := models.NewWalletSnapshot(dec("100"), dec("30"), "000012345678")

	assert.True(t, snapshot.AvailableBalance.Equal(dec("70")))
	assert.True(t, snapshot.Balance.Equal(dec("100")))
	assert.True(t, snapshot.PendingWithdrawals.Equal(dec("30")))
}

func TestNewWalletSnapshot_NoPending(t *testing.T) {
	snapshot := models.NewWalletSnapshot(dec("42.500"), dec("0"), "000012345678")
	assert.True(t, snapshot.AvailableBalance.Equal(snapshot.Balance))
}

func TestWithdrawalRequest_Terminal(t *testing.T) {
	for status, terminal := range map[models.RequestStatus]bool{
		models.RequestPending:   false,
		models.RequestApproved:  true,
		models.RequestRejected:  true,
		models.RequestCancelled: true,
	} {
		req := models.WithdrawalRequest{Status: status}
		assert.Equal(t, terminal, req.Terminal(), "status %s", status)
	}
}
