// payment-simulator-poc/internal/simulator/cards.go
package simulator

import (
	"strings"

	apperr "github.com/example/payment-simulator-poc/pkg/errors"
)

// MagicCards memetakan nomor kartu test ke outcome paksa. Nomor default meniru
// deck test-card yang umum dipakai; semuanya bisa dioverride lewat config.
type MagicCards struct {
	Success           string
	Declined          string
	Error             string
	InvalidCVV        string
	Expired           string
	InsufficientFunds string
	InvalidNumber     string
}

func DefaultMagicCards() MagicCards {
	return MagicCards{
		Success:           "4111111111111111",
		Declined:          "4000000000000002",
		Error:             "4000000000000119",
		InvalidCVV:        "4000000000000127",
		Expired:           "4000000000000069",
		InsufficientFunds: "4000000000009995",
		InvalidNumber:     "4242424242424241",
	}
}

// Metode yang butuh cardDetails.number.
var cardMethods = map[string]bool{
	"credit_card": true,
	"debit_card":  true,
}

func isCardMethod(method string) bool {
	return cardMethods[method]
}

// normalizeCardNumber: buang spasi dan strip sebelum lookup tabel.
func normalizeCardNumber(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	number = strings.ReplaceAll(number, "-", "")
	return strings.TrimSpace(number)
}

// outcomeFor cek nomor kartu terhadap tabel magic dalam urutan prioritas tetap:
// declined -> error -> invalid cvv -> expired -> insufficient funds -> invalid
// number. Return nil kalau nomor tidak match outcome gagal manapun.
func (c MagicCards) outcomeFor(number string) error {
	switch number {
	case c.Declined:
		return apperr.New(apperr.CodeCardDeclined, "card was declined")
	case c.Error:
		return apperr.New(apperr.CodeProcessingError, "payment processing failed")
	case c.InvalidCVV:
		return apperr.New(apperr.CodeInvalidCVV, "invalid CVV")
	case c.Expired:
		return apperr.New(apperr.CodeExpiredCard, "card has expired")
	case c.InsufficientFunds:
		return apperr.New(apperr.CodeInsufficientFunds, "insufficient funds")
	case c.InvalidNumber:
		return apperr.New(apperr.CodeInvalidCard, "invalid card number")
	}
	return nil
}
