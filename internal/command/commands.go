// internal/command/commands.go
package command

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrFeeMintMismatch возникает, если запись блокировки принадлежит другому fee NFT
	ErrFeeMintMismatch = errors.New("fee nft mint mismatch")

	// ErrInvalidCommand возникает при некорректных параметрах команды
	ErrInvalidCommand = errors.New("invalid command")
)

// Command is one user intent handled by the Processor.
type Command interface {
	GetType() string
	Validate() error
}

// LockCPLiquidityCommand блокирует LP токены пула cp-swap
type LockCPLiquidityCommand struct {
	Pool           solana.PublicKey `json:"pool"`
	LPTokenAccount solana.PublicKey `json:"lp_token_account"`
	LPAmount       uint64           `json:"lp_amount"`
	WithMetadata   bool             `json:"with_metadata"`
}

func (c LockCPLiquidityCommand) GetType() string {
	return "lock_cp_liquidity"
}

func (c LockCPLiquidityCommand) Validate() error {
	if c.Pool.IsZero() {
		return fmt.Errorf("%w: pool cannot be empty", ErrInvalidCommand)
	}
	if c.LPTokenAccount.IsZero() {
		return fmt.Errorf("%w: lp token account cannot be empty", ErrInvalidCommand)
	}
	if c.LPAmount == 0 {
		return fmt.Errorf("%w: lp amount must be positive", ErrInvalidCommand)
	}
	return nil
}

// CollectCPFeesCommand собирает комиссии с заблокированной ликвидности
type CollectCPFeesCommand struct {
	FeeNFTAccount solana.PublicKey `json:"fee_nft_account"`
	// CreateTokenAccounts добавляет идемпотентное создание ATA получателя
	CreateTokenAccounts bool `json:"create_token_accounts"`
}

func (c CollectCPFeesCommand) GetType() string {
	return "collect_cp_fees"
}

func (c CollectCPFeesCommand) Validate() error {
	if c.FeeNFTAccount.IsZero() {
		return fmt.Errorf("%w: fee nft account cannot be empty", ErrInvalidCommand)
	}
	return nil
}

// LockCLMMPositionCommand блокирует NFT позиции CLMM
type LockCLMMPositionCommand struct {
	PositionNFTMint    solana.PublicKey `json:"position_nft_mint"`
	PositionNFTAccount solana.PublicKey `json:"position_nft_account,omitempty"` // по умолчанию ATA владельца
	WithMetadata       bool             `json:"with_metadata"`
}

func (c LockCLMMPositionCommand) GetType() string {
	return "lock_clmm_position"
}

func (c LockCLMMPositionCommand) Validate() error {
	if c.PositionNFTMint.IsZero() {
		return fmt.Errorf("%w: position nft mint cannot be empty", ErrInvalidCommand)
	}
	return nil
}
