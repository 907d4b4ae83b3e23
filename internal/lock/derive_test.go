package lock

import (
	"errors"
	"strings"
	"testing"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testLockProgram     = solana.MustPublicKeyFromBase58("LockrWmn6K5twhz3y9w1dQERbmgSaRkfnTeTKbpofwE")
	testCPSwapProgram   = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")
	testMetadataProgram = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
)

func isOnCurve(key solana.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(key[:])
	return err == nil
}

func TestDeriveProgramAddress_OffCurveAndDeterministic(t *testing.T) {
	mint := solana.NewWallet().PublicKey()

	tests := []struct {
		name  string
		seeds [][]byte
		owner solana.PublicKey
	}{
		{"cp authority", [][]byte{[]byte(LockCPAuthSeed)}, testLockProgram},
		{"clmm authority", [][]byte{[]byte(LockCLMMAuthSeed)}, testLockProgram},
		{"locked liquidity", [][]byte{[]byte(LockedLiquiditySeed), mint[:]}, testLockProgram},
		{"metadata", [][]byte{[]byte(MetadataSeed), testMetadataProgram[:], mint[:]}, testMetadataProgram},
		{"no seeds", nil, testCPSwapProgram},
		{"empty seed", [][]byte{{}}, testCPSwapProgram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, bump, err := DeriveProgramAddress(tt.seeds, tt.owner)
			require.NoError(t, err)
			assert.False(t, isOnCurve(address), "derived address must be off curve")

			again, againBump, err := DeriveProgramAddress(tt.seeds, tt.owner)
			require.NoError(t, err)
			assert.Equal(t, address, again)
			assert.Equal(t, bump, againBump)

			want, wantBump, err := solana.FindProgramAddress(tt.seeds, tt.owner)
			require.NoError(t, err)
			assert.Equal(t, want, address)
			assert.Equal(t, wantBump, bump)
		})
	}
}

func TestLockCPAuthority_Stable(t *testing.T) {
	first, firstBump, err := LockCPAuthority(testLockProgram)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		address, bump, err := LockCPAuthority(testLockProgram)
		require.NoError(t, err)
		assert.Equal(t, first, address)
		assert.Equal(t, firstBump, bump)
	}

	direct, directBump, err := DeriveProgramAddress([][]byte{[]byte("lock_cp_authority_seed")}, testLockProgram)
	require.NoError(t, err)
	assert.Equal(t, direct, first)
	assert.Equal(t, directBump, firstBump)
}

func TestDeriveProgramAddress_InvalidSeeds(t *testing.T) {
	t.Run("seed too long", func(t *testing.T) {
		_, _, err := DeriveProgramAddress([][]byte{[]byte(strings.Repeat("x", 33))}, testLockProgram)
		require.Error(t, err)

		var derr *DerivationError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, testLockProgram, derr.Owner)
		assert.ErrorIs(t, err, ErrInvalidSeeds)
	})

	t.Run("too many seeds", func(t *testing.T) {
		seeds := make([][]byte, 16)
		for i := range seeds {
			seeds[i] = []byte{byte(i)}
		}
		_, _, err := DeriveProgramAddress(seeds, testLockProgram)
		assert.ErrorIs(t, err, ErrInvalidSeeds)
	})
}

func TestDeriveHoldingAddress(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	address, err := DeriveHoldingAddress(owner, mint, solana.TokenProgramID, solana.SPLAssociatedTokenAccountProgramID)
	require.NoError(t, err)

	want, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, want, address)
	assert.False(t, isOnCurve(address))

	token2022, err := DeriveHoldingAddress(owner, mint, solana.Token2022ProgramID, solana.SPLAssociatedTokenAccountProgramID)
	require.NoError(t, err)
	assert.NotEqual(t, address, token2022)
}

func TestNamedAddresses(t *testing.T) {
	mint := solana.NewWallet().PublicKey()

	liquidity, _, err := LockedLiquidityAddress(testLockProgram, mint)
	require.NoError(t, err)
	position, _, err := LockedPositionAddress(testLockProgram, mint)
	require.NoError(t, err)
	assert.NotEqual(t, liquidity, position, "distinct seeds must give distinct records")

	cpAuth, _, err := LockCPAuthority(testLockProgram)
	require.NoError(t, err)
	clmmAuth, _, err := LockCLMMAuthority(testLockProgram)
	require.NoError(t, err)
	assert.NotEqual(t, cpAuth, clmmAuth)

	swapAuth, _, err := CPSwapAuthority(testCPSwapProgram)
	require.NoError(t, err)
	want, _, err := solana.FindProgramAddress([][]byte{[]byte("vault_and_lp_mint_auth_seed")}, testCPSwapProgram)
	require.NoError(t, err)
	assert.Equal(t, want, swapAuth)

	metadata, _, err := MetadataAddress(testMetadataProgram, mint)
	require.NoError(t, err)
	wantMeta, _, err := solana.FindTokenMetadataAddress(mint)
	require.NoError(t, err)
	assert.Equal(t, wantMeta, metadata)
}
