package lock

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

// DeriveProgramAddress finds the canonical program address for seeds under
// owner. Bumps are tried from 255 down to 1 and the first candidate that falls
// off the ed25519 curve wins, the same search the runtime performs.
func DeriveProgramAddress(seeds [][]byte, owner solana.PublicKey) (solana.PublicKey, uint8, error) {
	// one slot is taken by the bump
	if len(seeds) > maxSeeds-1 {
		return solana.PublicKey{}, 0, &DerivationError{
			Seeds: seeds,
			Owner: owner,
			Err:   fmt.Errorf("%w: %d seeds, at most %d allowed", ErrInvalidSeeds, len(seeds), maxSeeds-1),
		}
	}
	for i, seed := range seeds {
		if len(seed) > maxSeedLength {
			return solana.PublicKey{}, 0, &DerivationError{
				Seeds: seeds,
				Owner: owner,
				Err:   fmt.Errorf("%w: seed %d is %d bytes, at most %d allowed", ErrInvalidSeeds, i, len(seed), maxSeedLength),
			}
		}
	}

	bump := []byte{0}
	candidate := make([][]byte, len(seeds)+1)
	copy(candidate, seeds)
	candidate[len(seeds)] = bump

	for b := math.MaxUint8; b > 0; b-- {
		bump[0] = byte(b)
		// Seeds are valid at this point, so an error only means "on curve".
		address, err := solana.CreateProgramAddress(candidate, owner)
		if err == nil {
			return address, uint8(b), nil
		}
	}

	return solana.PublicKey{}, 0, &DerivationError{Seeds: seeds, Owner: owner, Err: ErrNoViableBump}
}

// DeriveHoldingAddress returns the associated token account of owner for
// asset. tokenProgram is part of the seed template, so the same owner and mint
// give different holdings under Token and Token-2022.
func DeriveHoldingAddress(owner, asset, tokenProgram, holdingProgram solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := DeriveProgramAddress(
		[][]byte{owner[:], tokenProgram[:], asset[:]},
		holdingProgram,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive holding of %s for %s: %w", asset, owner, err)
	}
	return address, nil
}

// LockCPAuthority is the authority that owns liquidity locked from cp-swap pools.
func LockCPAuthority(lockProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveProgramAddress([][]byte{[]byte(LockCPAuthSeed)}, lockProgram)
}

// LockCLMMAuthority is the authority that owns locked CLMM position NFTs.
func LockCLMMAuthority(lockProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveProgramAddress([][]byte{[]byte(LockCLMMAuthSeed)}, lockProgram)
}

// LockedLiquidityAddress is the LockedCpLiquidityState record keyed by its fee NFT.
func LockedLiquidityAddress(lockProgram, feeNFTMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveProgramAddress([][]byte{[]byte(LockedLiquiditySeed), feeNFTMint[:]}, lockProgram)
}

// LockedPositionAddress is the LockedClmmPositionState record keyed by its fee NFT.
func LockedPositionAddress(lockProgram, feeNFTMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveProgramAddress([][]byte{[]byte(LockedPositionSeed), feeNFTMint[:]}, lockProgram)
}

// MetadataAddress is the token metadata account of mint.
func MetadataAddress(metadataProgram, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveProgramAddress(
		[][]byte{[]byte(MetadataSeed), metadataProgram[:], mint[:]},
		metadataProgram,
	)
}

// CPSwapAuthority is the vault and LP mint authority of the cp-swap program.
func CPSwapAuthority(cpProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return DeriveProgramAddress([][]byte{[]byte(CPSwapAuthSeed)}, cpProgram)
}
