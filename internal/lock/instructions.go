// =============================
// File: internal/lock/instructions.go
// =============================
package lock

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Call is a fully assembled lock program instruction. It is immutable: every
// accessor returns a copy.
type Call struct {
	name      string
	programID solana.PublicKey
	accounts  solana.AccountMetaSlice
	data      []byte
}

var _ solana.Instruction = (*Call)(nil)

// Name returns the instruction kind, e.g. "lock_cp_liquidity".
func (c *Call) Name() string { return c.name }

// ProgramID implements solana.Instruction.
func (c *Call) ProgramID() solana.PublicKey { return c.programID }

// Accounts implements solana.Instruction.
func (c *Call) Accounts() []*solana.AccountMeta {
	out := make([]*solana.AccountMeta, len(c.accounts))
	for i, meta := range c.accounts {
		m := *meta
		out[i] = &m
	}
	return out
}

// Data implements solana.Instruction.
func (c *Call) Data() ([]byte, error) {
	data := make([]byte, len(c.data))
	copy(data, c.data)
	return data, nil
}

// Signers returns the distinct signer addresses in reference order. The
// caller appears once even when it fills several signer slots.
func (c *Call) Signers() []solana.PublicKey {
	seen := make(map[solana.PublicKey]struct{})
	var signers []solana.PublicKey
	for _, meta := range c.accounts {
		if !meta.IsSigner {
			continue
		}
		if _, ok := seen[meta.PublicKey]; ok {
			continue
		}
		seen[meta.PublicKey] = struct{}{}
		signers = append(signers, meta.PublicKey)
	}
	return signers
}

// LockCPLiquidityParams are the inputs of a cp-swap liquidity lock.
type LockCPLiquidityParams struct {
	Owner         solana.PublicKey // caller, pays and signs
	FeeNFTMint    solana.PublicKey // fresh identity, co-signs
	Pool          solana.PublicKey
	LPMint        solana.PublicKey
	UserLPAccount solana.PublicKey
	Token0Vault   solana.PublicKey
	Token1Vault   solana.PublicKey
	LPAmount      uint64
	WithMetadata  bool
}

// CollectCPFeesParams are the inputs of a fee collection from a cp-swap lock.
type CollectCPFeesParams struct {
	Owner         solana.PublicKey
	FeeNFTMint    solana.PublicKey
	FeeNFTAccount solana.PublicKey
	Pool          solana.PublicKey
	LPMint        solana.PublicKey
	Token0Vault   solana.PublicKey
	Token1Vault   solana.PublicKey
	Vault0Mint    solana.PublicKey
	Vault1Mint    solana.PublicKey
	UserToken0    solana.PublicKey
	UserToken1    solana.PublicKey
	FeeLPAmount   uint64
}

// LockCLMMPositionParams are the inputs of a CLMM position lock.
type LockCLMMPositionParams struct {
	Owner              solana.PublicKey
	FeeNFTMint         solana.PublicKey // fresh identity, co-signs
	PositionNFTMint    solana.PublicKey
	PositionNFTAccount solana.PublicKey
	PersonalPosition   solana.PublicKey
	WithMetadata       bool
}

func requireSigners(owner, feeNFTMint solana.PublicKey) error {
	if owner.IsZero() {
		return fmt.Errorf("%w: owner", ErrMissingSigner)
	}
	if feeNFTMint.IsZero() {
		return fmt.Errorf("%w: fee nft mint", ErrMissingSigner)
	}
	return nil
}

// BuildLockCPLiquidity assembles lock_cp_liquidity.
func BuildLockCPLiquidity(programs Programs, p LockCPLiquidityParams) (*Call, error) {
	if err := requireSigners(p.Owner, p.FeeNFTMint); err != nil {
		return nil, err
	}

	authority, _, err := LockCPAuthority(programs.Lock)
	if err != nil {
		return nil, fmt.Errorf("lock cp authority: %w", err)
	}
	lockedLiquidity, _, err := LockedLiquidityAddress(programs.Lock, p.FeeNFTMint)
	if err != nil {
		return nil, fmt.Errorf("locked liquidity: %w", err)
	}
	metadata, _, err := MetadataAddress(programs.Metadata, p.FeeNFTMint)
	if err != nil {
		return nil, fmt.Errorf("fee nft metadata: %w", err)
	}
	feeNFTAccount, err := DeriveHoldingAddress(p.Owner, p.FeeNFTMint, programs.Token, programs.AssociatedToken)
	if err != nil {
		return nil, err
	}
	lockedLPVault, err := DeriveHoldingAddress(authority, p.LPMint, programs.Token, programs.AssociatedToken)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(authority, false, false),
		solana.NewAccountMeta(p.Owner, true, true),   // payer
		solana.NewAccountMeta(p.Owner, true, true),   // liquidity owner
		solana.NewAccountMeta(p.Owner, false, false), // fee nft owner
		solana.NewAccountMeta(p.FeeNFTMint, true, true),
		solana.NewAccountMeta(feeNFTAccount, true, false),
		solana.NewAccountMeta(p.Pool, true, false),
		solana.NewAccountMeta(lockedLiquidity, true, false),
		solana.NewAccountMeta(p.LPMint, true, false),
		solana.NewAccountMeta(p.UserLPAccount, true, false),
		solana.NewAccountMeta(lockedLPVault, true, false),
		solana.NewAccountMeta(p.Token0Vault, true, false),
		solana.NewAccountMeta(p.Token1Vault, true, false),
		solana.NewAccountMeta(metadata, true, false),
		solana.NewAccountMeta(programs.Rent, false, false),
		solana.NewAccountMeta(programs.System, false, false),
		solana.NewAccountMeta(programs.Token, false, false),
		solana.NewAccountMeta(programs.Metadata, false, false),
	}

	return newCall("lock_cp_liquidity", programs.Lock, accounts,
		EncodeLockCPLiquidity(p.LPAmount, p.WithMetadata), LockCPLiquidityAccounts)
}

// BuildCollectCPFees assembles collect_cp_fees.
func BuildCollectCPFees(programs Programs, p CollectCPFeesParams) (*Call, error) {
	if err := requireSigners(p.Owner, p.FeeNFTMint); err != nil {
		return nil, err
	}

	authority, _, err := LockCPAuthority(programs.Lock)
	if err != nil {
		return nil, fmt.Errorf("lock cp authority: %w", err)
	}
	// Authority of the pool program, not of the lock program.
	cpAuthority, _, err := CPSwapAuthority(programs.CPSwap)
	if err != nil {
		return nil, fmt.Errorf("cp-swap authority: %w", err)
	}
	lockedLiquidity, _, err := LockedLiquidityAddress(programs.Lock, p.FeeNFTMint)
	if err != nil {
		return nil, fmt.Errorf("locked liquidity: %w", err)
	}
	lockedLPVault, err := DeriveHoldingAddress(authority, p.LPMint, programs.Token, programs.AssociatedToken)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(authority, false, false),
		solana.NewAccountMeta(p.Owner, true, true),
		solana.NewAccountMeta(p.Owner, true, true),
		solana.NewAccountMeta(p.Owner, false, false),
		solana.NewAccountMeta(p.FeeNFTMint, true, true),
		solana.NewAccountMeta(p.FeeNFTAccount, true, false),
		solana.NewAccountMeta(lockedLiquidity, true, false),
		solana.NewAccountMeta(programs.CPSwap, true, false),
		solana.NewAccountMeta(cpAuthority, true, false),
		solana.NewAccountMeta(p.Pool, true, false),
		solana.NewAccountMeta(p.LPMint, true, false),
		solana.NewAccountMeta(p.UserToken0, true, false),
		solana.NewAccountMeta(p.UserToken1, true, false),
		solana.NewAccountMeta(p.Token0Vault, true, false),
		solana.NewAccountMeta(p.Token1Vault, true, false),
		solana.NewAccountMeta(p.Vault0Mint, false, false),
		solana.NewAccountMeta(p.Vault1Mint, false, false),
		solana.NewAccountMeta(lockedLPVault, true, false),
		solana.NewAccountMeta(programs.Token, false, false),
		solana.NewAccountMeta(programs.Token2022, false, false),
		solana.NewAccountMeta(programs.Memo, false, false),
	}

	return newCall("collect_cp_fees", programs.Lock, accounts,
		EncodeCollectCPFees(p.FeeLPAmount), CollectCPFeesAccounts)
}

// BuildLockCLMMPosition assembles lock_clmm_position. The position authority
// and the locked position record live under the lock program.
func BuildLockCLMMPosition(programs Programs, p LockCLMMPositionParams) (*Call, error) {
	if err := requireSigners(p.Owner, p.FeeNFTMint); err != nil {
		return nil, err
	}

	authority, _, err := LockCLMMAuthority(programs.Lock)
	if err != nil {
		return nil, fmt.Errorf("lock clmm authority: %w", err)
	}
	lockedPosition, _, err := LockedPositionAddress(programs.Lock, p.FeeNFTMint)
	if err != nil {
		return nil, fmt.Errorf("locked position: %w", err)
	}
	metadata, _, err := MetadataAddress(programs.Metadata, p.FeeNFTMint)
	if err != nil {
		return nil, fmt.Errorf("fee nft metadata: %w", err)
	}
	feeNFTAccount, err := DeriveHoldingAddress(p.Owner, p.FeeNFTMint, programs.Token, programs.AssociatedToken)
	if err != nil {
		return nil, err
	}
	lockedNFTAccount, err := DeriveHoldingAddress(authority, p.PositionNFTMint, programs.Token, programs.AssociatedToken)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(authority, false, false),
		solana.NewAccountMeta(p.Owner, true, true),
		solana.NewAccountMeta(p.Owner, true, true),
		solana.NewAccountMeta(p.Owner, false, false),
		solana.NewAccountMeta(p.PositionNFTAccount, true, false),
		solana.NewAccountMeta(p.PersonalPosition, true, false),
		solana.NewAccountMeta(p.PositionNFTMint, true, false),
		solana.NewAccountMeta(lockedNFTAccount, true, false),
		solana.NewAccountMeta(lockedPosition, true, false),
		solana.NewAccountMeta(p.FeeNFTMint, true, true),
		solana.NewAccountMeta(feeNFTAccount, true, false),
		solana.NewAccountMeta(metadata, true, false),
		solana.NewAccountMeta(programs.Metadata, false, false),
		solana.NewAccountMeta(programs.AssociatedToken, false, false),
		solana.NewAccountMeta(programs.Rent, false, false),
		solana.NewAccountMeta(programs.Token, false, false),
		solana.NewAccountMeta(programs.System, false, false),
	}

	return newCall("lock_clmm_position", programs.Lock, accounts,
		EncodeLockCLMMPosition(p.WithMetadata), LockCLMMPositionAccounts)
}

func newCall(name string, programID solana.PublicKey, accounts solana.AccountMetaSlice, data []byte, want int) (*Call, error) {
	if len(accounts) != want {
		return nil, fmt.Errorf("%s: built %d accounts, protocol expects %d", name, len(accounts), want)
	}
	return &Call{name: name, programID: programID, accounts: accounts, data: data}, nil
}
