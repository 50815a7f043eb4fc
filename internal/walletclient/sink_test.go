package walletclient_test

import (
	"testing"

	"github.com/fonarev/gopherwallet.git/internal/walletclient"
	"github.com/stretchr/testify/assert"
)

func TestMoneyFormatter_ThreeFractionDigits(t *testing.T) {
	f := walletclient.NewMoneyFormatter("en")

	assert.Equal(t, "5.000", f.Format(dec("5")))
	assert.Equal(t, "12.500", f.Format(dec("12.5")))
	assert.Equal(t, "1,234.500", f.Format(dec("1234.5")))
	assert.Equal(t, "0.001", f.Format(dec("0.001")))
}

func TestMoneyFormatter_LocaleGrouping(t *testing.T) {
	// German locale swaps the separators
	f := walletclient.NewMoneyFormatter("de")
	assert.Equal(t, "1.234,500", f.Format(dec("1234.5")))
}

func TestMoneyFormatter_UnknownLanguageFallsBack(t *testing.T) {
	f := walletclient.NewMoneyFormatter("no-such-lang")
	assert.NotEmpty(t, f.Format(dec("7")))
}
