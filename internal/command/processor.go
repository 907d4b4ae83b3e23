// internal/command/processor.go
package command

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-lock/internal/blockchain"
	"github.com/rovshanmuradov/solana-lock/internal/dex/raydium"
	"github.com/rovshanmuradov/solana-lock/internal/lock"
	"github.com/rovshanmuradov/solana-lock/internal/wallet"
)

// Plan is everything needed to submit one command: optional setup
// instructions, the lock call and the identities generated for it.
type Plan struct {
	Operation  string
	Setup      []solana.Instruction
	Call       *lock.Call
	Identities []*wallet.Wallet
	// Signers is the merged signer set of Setup and Call.
	Signers    []solana.PublicKey
	FeeNFTMint solana.PublicKey
	Details    map[string]string
}

// Instructions returns Setup followed by Call.
func (p *Plan) Instructions() []solana.Instruction {
	out := make([]solana.Instruction, 0, len(p.Setup)+1)
	out = append(out, p.Setup...)
	return append(out, p.Call)
}

// Processor translates commands into plans. Reads happen strictly in
// sequence through the AccountReader.
type Processor struct {
	reader     blockchain.AccountReader
	programs   lock.Programs
	owner      solana.PublicKey
	identities wallet.IdentityGenerator
	logger     *zap.Logger
}

// NewProcessor создает обработчик команд. owner может быть нулевым для команд
// только на чтение.
func NewProcessor(
	reader blockchain.AccountReader,
	programs lock.Programs,
	owner solana.PublicKey,
	identities wallet.IdentityGenerator,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		reader:     reader,
		programs:   programs,
		owner:      owner,
		identities: identities,
		logger:     logger.Named("processor"),
	}
}

func (p *Processor) requireOwner() error {
	if p.owner.IsZero() {
		return fmt.Errorf("%w: no wallet configured", lock.ErrMissingSigner)
	}
	return nil
}

func (p *Processor) newFeeNFTMint() (*wallet.Wallet, error) {
	identity, err := p.identities.NewIdentity()
	if err != nil {
		return nil, fmt.Errorf("fee nft mint: %w", err)
	}
	p.logger.Debug("Generated fee nft mint", zap.String("mint", identity.PublicKey.String()))
	return identity, nil
}

// LockCPLiquidity reads the pool, generates a fee NFT mint and builds the lock call.
func (p *Processor) LockCPLiquidity(ctx context.Context, cmd LockCPLiquidityCommand) (*Plan, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireOwner(); err != nil {
		return nil, err
	}
	feeMint, err := p.newFeeNFTMint()
	if err != nil {
		return nil, err
	}

	pool, err := p.readCPPool(ctx, cmd.Pool)
	if err != nil {
		return nil, err
	}

	call, err := lock.BuildLockCPLiquidity(p.programs, lock.LockCPLiquidityParams{
		Owner:         p.owner,
		FeeNFTMint:    feeMint.PublicKey,
		Pool:          cmd.Pool,
		LPMint:        pool.LPMint,
		UserLPAccount: cmd.LPTokenAccount,
		Token0Vault:   pool.Token0Vault,
		Token1Vault:   pool.Token1Vault,
		LPAmount:      cmd.LPAmount,
		WithMetadata:  cmd.WithMetadata,
	})
	if err != nil {
		return nil, err
	}

	locked, _, err := lock.LockedLiquidityAddress(p.programs.Lock, feeMint.PublicKey)
	if err != nil {
		return nil, err
	}

	return newPlan(cmd.GetType(), nil, call, feeMint.PublicKey, []*wallet.Wallet{feeMint}, map[string]string{
		"pool":             cmd.Pool.String(),
		"lp_mint":          pool.LPMint.String(),
		"lp_amount":        fmt.Sprintf("%d", cmd.LPAmount),
		"locked_liquidity": locked.String(),
	}), nil
}

// CollectCPFees collects every fee owed to the lock behind a fee NFT account.
func (p *Processor) CollectCPFees(ctx context.Context, cmd CollectCPFeesCommand) (*Plan, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireOwner(); err != nil {
		return nil, err
	}

	feeAccount, err := p.readTokenAccount(ctx, cmd.FeeNFTAccount)
	if err != nil {
		return nil, err
	}
	feeMint := feeAccount.Mint

	lockedAddress, state, err := p.LockedLiquidity(ctx, feeMint)
	if err != nil {
		return nil, err
	}
	if state.FeeNFTMint != feeMint {
		return nil, fmt.Errorf("%w: account holds %s, record %s expects %s",
			ErrFeeMintMismatch, feeMint, lockedAddress, state.FeeNFTMint)
	}

	pool, err := p.readCPPool(ctx, state.PoolID)
	if err != nil {
		return nil, err
	}

	userToken0, err := lock.DeriveHoldingAddress(p.owner, pool.Token0Mint, pool.Token0Program, p.programs.AssociatedToken)
	if err != nil {
		return nil, err
	}
	userToken1, err := lock.DeriveHoldingAddress(p.owner, pool.Token1Mint, pool.Token1Program, p.programs.AssociatedToken)
	if err != nil {
		return nil, err
	}

	var setup []solana.Instruction
	if cmd.CreateTokenAccounts {
		setup = append(setup,
			wallet.CreateAssociatedTokenAccountIdempotentInstruction(
				p.owner, p.owner, pool.Token0Mint, userToken0, pool.Token0Program, p.programs.AssociatedToken),
			wallet.CreateAssociatedTokenAccountIdempotentInstruction(
				p.owner, p.owner, pool.Token1Mint, userToken1, pool.Token1Program, p.programs.AssociatedToken),
		)
	}

	call, err := lock.BuildCollectCPFees(p.programs, lock.CollectCPFeesParams{
		Owner:         p.owner,
		FeeNFTMint:    feeMint,
		FeeNFTAccount: cmd.FeeNFTAccount,
		Pool:          state.PoolID,
		LPMint:        pool.LPMint,
		Token0Vault:   pool.Token0Vault,
		Token1Vault:   pool.Token1Vault,
		Vault0Mint:    pool.Token0Mint,
		Vault1Mint:    pool.Token1Mint,
		UserToken0:    userToken0,
		UserToken1:    userToken1,
		FeeLPAmount:   lock.CollectAllFees,
	})
	if err != nil {
		return nil, err
	}

	return newPlan(cmd.GetType(), setup, call, feeMint, nil, map[string]string{
		"pool":             state.PoolID.String(),
		"locked_liquidity": lockedAddress.String(),
		"user_token_0":     userToken0.String(),
		"user_token_1":     userToken1.String(),
	}), nil
}

// LockCLMMPosition locks a CLMM position NFT.
func (p *Processor) LockCLMMPosition(ctx context.Context, cmd LockCLMMPositionCommand) (*Plan, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := p.requireOwner(); err != nil {
		return nil, err
	}
	feeMint, err := p.newFeeNFTMint()
	if err != nil {
		return nil, err
	}

	personal, err := raydium.DerivePersonalPosition(p.programs.CLMM, cmd.PositionNFTMint)
	if err != nil {
		return nil, err
	}
	data, err := p.reader.GetAccountData(ctx, personal)
	if err != nil {
		return nil, fmt.Errorf("read personal position %s: %w", personal, err)
	}
	position, err := raydium.ParsePersonalPosition(data)
	if err != nil {
		return nil, fmt.Errorf("personal position %s: %w", personal, err)
	}

	nftAccount := cmd.PositionNFTAccount
	if nftAccount.IsZero() {
		nftAccount, err = lock.DeriveHoldingAddress(p.owner, cmd.PositionNFTMint, p.programs.Token, p.programs.AssociatedToken)
		if err != nil {
			return nil, err
		}
	}

	call, err := lock.BuildLockCLMMPosition(p.programs, lock.LockCLMMPositionParams{
		Owner:              p.owner,
		FeeNFTMint:         feeMint.PublicKey,
		PositionNFTMint:    cmd.PositionNFTMint,
		PositionNFTAccount: nftAccount,
		PersonalPosition:   personal,
		WithMetadata:       cmd.WithMetadata,
	})
	if err != nil {
		return nil, err
	}

	locked, _, err := lock.LockedPositionAddress(p.programs.Lock, feeMint.PublicKey)
	if err != nil {
		return nil, err
	}

	return newPlan(cmd.GetType(), nil, call, feeMint.PublicKey, []*wallet.Wallet{feeMint}, map[string]string{
		"pool":              position.PoolID.String(),
		"personal_position": personal.String(),
		"locked_position":   locked.String(),
	}), nil
}

// LockedLiquidity derives, reads and decodes the record of a fee NFT mint.
func (p *Processor) LockedLiquidity(ctx context.Context, feeNFTMint solana.PublicKey) (solana.PublicKey, *lock.LockedCPLiquidityState, error) {
	address, _, err := lock.LockedLiquidityAddress(p.programs.Lock, feeNFTMint)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	data, err := p.reader.GetAccountData(ctx, address)
	if err != nil {
		return address, nil, fmt.Errorf("read locked liquidity %s: %w", address, err)
	}
	state, err := lock.DecodeLockedCPLiquidity(data)
	if err != nil {
		return address, nil, err
	}
	return address, state, nil
}

// LockedPosition derives, reads and decodes the position record of a fee NFT mint.
func (p *Processor) LockedPosition(ctx context.Context, feeNFTMint solana.PublicKey) (solana.PublicKey, *lock.LockedCLMMPositionState, error) {
	address, _, err := lock.LockedPositionAddress(p.programs.Lock, feeNFTMint)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	data, err := p.reader.GetAccountData(ctx, address)
	if err != nil {
		return address, nil, fmt.Errorf("read locked position %s: %w", address, err)
	}
	state, err := lock.DecodeLockedCLMMPosition(data)
	if err != nil {
		return address, nil, err
	}
	return address, state, nil
}

// LockEntry is one record found by ListLocks; exactly one of Liquidity and
// Position is set.
type LockEntry struct {
	Address   solana.PublicKey
	Kind      lock.RecordKind
	Liquidity *lock.LockedCPLiquidityState
	Position  *lock.LockedCLMMPositionState
}

// ListLocks returns every lock record owned by owner. Liquidity records come
// first, then position records.
func (p *Processor) ListLocks(ctx context.Context, owner solana.PublicKey) ([]LockEntry, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("%w: owner cannot be empty", ErrInvalidCommand)
	}

	var entries []LockEntry
	for _, q := range []struct {
		kind   lock.RecordKind
		offset uint64
	}{
		{lock.LockedCPLiquidityKind, lock.LockedCPLiquidityOwnerOffset},
		{lock.LockedCLMMPositionKind, lock.LockedCLMMPositionOwnerOffset},
	} {
		accounts, err := p.reader.GetProgramAccounts(ctx, p.programs.Lock,
			blockchain.DataSize(uint64(q.kind.Length)),
			blockchain.Memcmp(0, q.kind.Discriminator[:]),
			blockchain.Memcmp(q.offset, owner[:]),
		)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", q.kind, err)
		}

		for _, acc := range accounts {
			entry := LockEntry{Address: acc.Address, Kind: q.kind}
			switch q.kind {
			case lock.LockedCPLiquidityKind:
				entry.Liquidity, err = lock.DecodeLockedCPLiquidity(acc.Data)
			default:
				entry.Position, err = lock.DecodeLockedCLMMPosition(acc.Data)
			}
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", acc.Address, err)
			}
			entries = append(entries, entry)
		}
		p.logger.Debug("Listed lock records",
			zap.String("kind", q.kind.String()),
			zap.Int("count", len(accounts)))
	}
	return entries, nil
}

func (p *Processor) readCPPool(ctx context.Context, address solana.PublicKey) (*raydium.CPPoolState, error) {
	data, err := p.reader.GetAccountData(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("read pool %s: %w", address, err)
	}
	pool, err := raydium.ParseCPPoolState(data)
	if err != nil {
		return nil, fmt.Errorf("pool %s: %w", address, err)
	}
	return pool, nil
}

func (p *Processor) readTokenAccount(ctx context.Context, address solana.PublicKey) (*token.Account, error) {
	data, err := p.reader.GetAccountData(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("read token account %s: %w", address, err)
	}
	var account token.Account
	if err := bin.NewBinDecoder(data).Decode(&account); err != nil {
		return nil, fmt.Errorf("decode token account %s: %w", address, err)
	}
	return &account, nil
}

// newPlan merges the signer sets of setup and call in instruction order.
func newPlan(
	op string,
	setup []solana.Instruction,
	call *lock.Call,
	feeNFTMint solana.PublicKey,
	identities []*wallet.Wallet,
	details map[string]string,
) *Plan {
	seen := make(map[solana.PublicKey]struct{})
	var signers []solana.PublicKey
	add := func(keys ...solana.PublicKey) {
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			signers = append(signers, k)
		}
	}
	for _, ix := range setup {
		for _, meta := range ix.Accounts() {
			if meta.IsSigner {
				add(meta.PublicKey)
			}
		}
	}
	add(call.Signers()...)

	return &Plan{
		Operation:  op,
		Setup:      setup,
		Call:       call,
		Identities: identities,
		Signers:    signers,
		FeeNFTMint: feeNFTMint,
		Details:    details,
	}
}
