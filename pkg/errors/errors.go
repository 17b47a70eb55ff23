// payment-simulator-poc/pkg/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
)

// Error codes dipakai apa adanya; test suite downstream assert ke string ini.
const (
	CodeInvalidRequest        = "invalid_request"
	CodeInvalidPaymentMethod  = "invalid_payment_method"
	CodeInvalidCardDetails    = "invalid_card_details"
	CodeCardDeclined          = "card_declined"
	CodeProcessingError       = "processing_error"
	CodeInvalidCVV            = "invalid_cvv"
	CodeExpiredCard           = "expired_card"
	CodeInsufficientFunds     = "insufficient_funds"
	CodeInvalidCard           = "invalid_card"
	CodePaymentDeclined       = "payment_declined"
	CodeTransactionNotFound   = "transaction_not_found"
	CodeAlreadyRefunded       = "already_refunded"
	CodeRefundProcessingError = "refund_processing_error"
	CodeServerError           = "server_error"
)

type E struct {
	Code    string
	Message string
	Err     error
}

func (e E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Wrap(code, msg string, err error) error {
	return E{Code: code, Message: msg, Err: err}
}

func New(code, msg string) error {
	return E{Code: code, Message: msg}
}

// AsE: ambil kembali E dari error. ok=false utk error asing.
func AsE(err error) (E, bool) {
	e, ok := err.(E)
	return e, ok
}

// HTTPStatus maps an error code to the response status existing suites expect.
func HTTPStatus(code string) int {
	switch code {
	case CodeInvalidRequest, CodeInvalidPaymentMethod, CodeInvalidCardDetails,
		CodeInvalidCVV, CodeExpiredCard, CodeInvalidCard, CodeAlreadyRefunded:
		return http.StatusBadRequest
	case CodeCardDeclined, CodePaymentDeclined, CodeInsufficientFunds:
		return http.StatusPaymentRequired
	case CodeTransactionNotFound:
		return http.StatusNotFound
	default:
		// processing_error, refund_processing_error, server_error
		return http.StatusInternalServerError
	}
}
