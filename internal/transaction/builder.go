// internal/transaction/builder.go
package transaction

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"

	"github.com/rovshanmuradov/solana-lock/internal/lock"
	"github.com/rovshanmuradov/solana-lock/internal/wallet"
)

// BlockhashSource отдаёт свежий blockhash
type BlockhashSource interface {
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// Builder помогает конструировать транзакции
type Builder struct {
	payer        solana.PublicKey
	keyring      *wallet.Keyring
	instructions []solana.Instruction
	unitLimit    uint32
	unitPrice    uint64
}

// NewBuilder создает новый билдер транзакций. payer должен быть в keyring.
func NewBuilder(payer solana.PublicKey, keyring *wallet.Keyring) *Builder {
	return &Builder{payer: payer, keyring: keyring}
}

// SetComputeBudget устанавливает параметры compute budget; нули отключают инструкцию
func (b *Builder) SetComputeBudget(units uint32, microLamports uint64) *Builder {
	b.unitLimit = units
	b.unitPrice = microLamports
	return b
}

// AddInstruction добавляет инструкцию в транзакцию
func (b *Builder) AddInstruction(instruction solana.Instruction) *Builder {
	b.instructions = append(b.instructions, instruction)
	return b
}

// Instructions возвращает инструкции в порядке исполнения, включая compute budget
func (b *Builder) Instructions() []solana.Instruction {
	instructions := make([]solana.Instruction, 0, len(b.instructions)+2)
	if b.unitLimit > 0 {
		instructions = append(instructions, computebudget.NewSetComputeUnitLimitInstruction(b.unitLimit).Build())
	}
	if b.unitPrice > 0 {
		instructions = append(instructions, computebudget.NewSetComputeUnitPriceInstruction(b.unitPrice).Build())
	}
	return append(instructions, b.instructions...)
}

// MissingSigners возвращает подписантов сообщения, которых нет в keyring
func (b *Builder) MissingSigners() ([]solana.PublicKey, error) {
	tx, err := solana.NewTransaction(b.Instructions(), solana.Hash{}, solana.TransactionPayer(b.payer))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return b.missing(tx), nil
}

func (b *Builder) missing(tx *solana.Transaction) []solana.PublicKey {
	var missing []solana.PublicKey
	for _, key := range tx.Message.Signers() {
		if !b.keyring.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Build создает и подписывает транзакцию
func (b *Builder) Build(ctx context.Context, source BlockhashSource) (*solana.Transaction, error) {
	if len(b.instructions) == 0 {
		return nil, fmt.Errorf("no instructions provided")
	}

	blockhash, err := source.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(b.Instructions(), blockhash, solana.TransactionPayer(b.payer))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if missing := b.missing(tx); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", lock.ErrMissingSigner, missing)
	}

	// Подписываем транзакцию
	if _, err := tx.Sign(b.keyring.Get); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return tx, nil
}
