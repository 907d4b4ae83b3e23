// internal/blockchain/solbc/errors.go
package solbc

import (
	"errors"
	"fmt"
)

var (
	// ErrTransactionFailed означает, что транзакция попала в блок с ошибкой
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrConfirmationTimeout возникает, если подтверждение не получено вовремя
	ErrConfirmationTimeout = errors.New("confirmation timeout")

	errNotConfirmed = errors.New("not confirmed yet")
)

// Error представляет ошибку RPC с дополнительным контекстом
type Error struct {
	Err     error
	NodeURL string
	Method  string
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	return fmt.Sprintf("RPC error [%s] at %s: %v", e.Method, e.NodeURL, e.Err)
}

// Unwrap возвращает оригинальную ошибку
func (e *Error) Unwrap() error {
	return e.Err
}
