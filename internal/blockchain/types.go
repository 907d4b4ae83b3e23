// internal/blockchain/types.go
package blockchain

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
)

// ErrAccountNotFound возвращается, когда аккаунт отсутствует в сети.
var ErrAccountNotFound = errors.New("account not found")

// AccountReader читает сырые данные аккаунтов.
type AccountReader interface {
	// Получить данные аккаунта. Отсутствующий аккаунт даёт ErrAccountNotFound.
	GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error)
	// Получить аккаунты программы, прошедшие все фильтры.
	GetProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...Filter) ([]ProgramAccount, error)
}

// Client определяет общий интерфейс для взаимодействия с блокчейном.
type Client interface {
	AccountReader
	// Получить последний blockhash.
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	// Отправить транзакцию.
	SendTransaction(ctx context.Context, tx *solana.Transaction, opts TransactionOptions) (solana.Signature, error)
	// Ожидание подтверждения транзакции.
	WaitForConfirmation(ctx context.Context, signature solana.Signature, timeout time.Duration) error
}

// TransactionOptions определяет опции для отправки транзакций.
type TransactionOptions struct {
	SkipPreflight bool
}

// Filter is a getProgramAccounts filter: a memcmp when Bytes is set,
// a data size check otherwise.
type Filter struct {
	Offset   uint64
	Bytes    []byte
	DataSize uint64
}

// Memcmp matches accounts whose data at offset equals b.
func Memcmp(offset uint64, b []byte) Filter {
	return Filter{Offset: offset, Bytes: b}
}

// DataSize matches accounts of exactly n bytes.
func DataSize(n uint64) Filter {
	return Filter{DataSize: n}
}

// ProgramAccount is one getProgramAccounts result.
type ProgramAccount struct {
	Address solana.PublicKey
	Data    []byte
}
