package walletclient

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotificationSink receives user-facing notifications. Injecting it keeps
// the controller free of ambient UI state and testable without one.
type NotificationSink interface {
	PlaySound()
	Toast(text string)
	InlineError(text string)
}

// Preferences supplies per-user presentation settings.
type Preferences interface {
	HideBalance() bool
	Language() string
}

// MoneyFormatter renders monetary values with exactly three fraction
// digits and locale-sensitive grouping. Presentation contract only.
type MoneyFormatter struct {
	p *message.Printer
}

func NewMoneyFormatter(lang string) *MoneyFormatter {
	return &MoneyFormatter{p: message.NewPrinter(language.Make(lang))}
}

func (f *MoneyFormatter) Format(d decimal.Decimal) string {
	return f.p.Sprint(number.Decimal(d.InexactFloat64(),
		number.MinFractionDigits(3),
		number.MaxFractionDigits(3)))
}

const maskedBalance = "•••"
