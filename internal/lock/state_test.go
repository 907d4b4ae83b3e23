package lock

import (
	"errors"
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/rovshanmuradov/solana-lock/internal/utils/binary"
)

func TestRecordLengths(t *testing.T) {
	assert.Equal(t, 256, LockedCPLiquidityKind.Length)
	assert.Equal(t, 241, LockedCLMMPositionKind.Length)
}

// liquidityFixture lays out a record field by field, independent of Encode.
func liquidityFixture(s LockedCPLiquidityState) []byte {
	data := make([]byte, LockedCPLiquidityKind.Length)
	copy(data, LockedCPLiquidityKind.Discriminator[:])
	offset := DiscriminatorSize
	for _, v := range []uint64{s.LockedLPAmount, s.ClaimedLPAmount, s.UnclaimedLPAmount, s.LastLP} {
		binary.WriteUint64LittleEndian(v, data, offset)
		offset += binary.Uint64Size
	}
	binary.WriteUint128LittleEndian(s.LastK, data, offset)
	offset += binary.Uint128Size
	binary.WriteUint64LittleEndian(s.RecentEpoch, data, offset)
	offset += binary.Uint64Size
	for _, k := range []solana.PublicKey{s.PoolID, s.FeeNFTMint, s.LockedOwner, s.LockedLPMint} {
		binary.WritePubKey(k, data, offset)
		offset += binary.PubKeySize
	}
	for _, v := range s.Padding {
		binary.WriteUint64LittleEndian(v, data, offset)
		offset += binary.Uint64Size
	}
	return data
}

func TestDecodeLockedCPLiquidity_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state LockedCPLiquidityState
	}{
		{"zero values", LockedCPLiquidityState{}},
		{
			name: "typical",
			state: LockedCPLiquidityState{
				LockedLPAmount:    1_000_000,
				ClaimedLPAmount:   12_345,
				UnclaimedLPAmount: 678,
				LastLP:            99_999_999,
				LastK:             uint128.New(0xdeadbeef, 0x01),
				RecentEpoch:       612,
				PoolID:            solana.NewWallet().PublicKey(),
				FeeNFTMint:        solana.NewWallet().PublicKey(),
				LockedOwner:       solana.NewWallet().PublicKey(),
				LockedLPMint:      solana.NewWallet().PublicKey(),
			},
		},
		{
			name: "max values",
			state: LockedCPLiquidityState{
				LockedLPAmount:    math.MaxUint64,
				ClaimedLPAmount:   math.MaxUint64,
				UnclaimedLPAmount: math.MaxUint64,
				LastLP:            math.MaxUint64,
				LastK:             uint128.Max,
				RecentEpoch:       math.MaxUint64,
				PoolID:            solana.NewWallet().PublicKey(),
				FeeNFTMint:        solana.NewWallet().PublicKey(),
				LockedOwner:       solana.NewWallet().PublicKey(),
				LockedLPMint:      solana.NewWallet().PublicKey(),
				Padding:           [8]uint64{1, 2, 3, 4, 5, 6, 7, math.MaxUint64},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := liquidityFixture(tt.state)

			decoded, err := DecodeLockedCPLiquidity(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.state, *decoded)

			encoded, err := decoded.Encode()
			require.NoError(t, err)
			assert.Equal(t, raw, encoded)
		})
	}
}

func TestLockedCPLiquidity_OwnerOffset(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	raw, err := (&LockedCPLiquidityState{LockedOwner: owner}).Encode()
	require.NoError(t, err)
	assert.Equal(t, owner, binary.ReadPubKey(raw, LockedCPLiquidityOwnerOffset))

	pos := solana.NewWallet().PublicKey()
	raw, err = (&LockedCLMMPositionState{Bump: 254, PositionOwner: pos}).Encode()
	require.NoError(t, err)
	assert.Equal(t, pos, binary.ReadPubKey(raw, LockedCLMMPositionOwnerOffset))
}

func TestDecodeLockedCLMMPosition_RoundTrip(t *testing.T) {
	state := LockedCLMMPositionState{
		Bump:             253,
		PositionOwner:    solana.NewWallet().PublicKey(),
		PoolID:           solana.NewWallet().PublicKey(),
		PositionID:       solana.NewWallet().PublicKey(),
		LockedNFTAccount: solana.NewWallet().PublicKey(),
		FeeNFTMint:       solana.NewWallet().PublicKey(),
		RecentEpoch:      700,
		Padding:          [8]uint64{0, 0, 0, 0, 0, 0, 0, 9},
	}

	raw, err := state.Encode()
	require.NoError(t, err)
	require.Len(t, raw, LockedCLMMPositionKind.Length)
	assert.Equal(t, uint8(253), raw[DiscriminatorSize])
	assert.Equal(t, uint64(700), binary.ReadUint64LittleEndian(raw, DiscriminatorSize+1+5*binary.PubKeySize))

	decoded, err := DecodeLockedCLMMPosition(raw)
	require.NoError(t, err)
	assert.Equal(t, state, *decoded)
}

func TestDecode_LengthMismatch(t *testing.T) {
	short := make([]byte, LockedCLMMPositionKind.Length-1)
	copy(short, LockedCLMMPositionKind.Discriminator[:])

	state, err := DecodeLockedCLMMPosition(short)
	assert.Nil(t, state)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
	assert.False(t, errors.Is(err, ErrKindMismatch))

	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, LockedCLMMPositionKind, derr.Kind)

	_, err = DecodeLockedCPLiquidity(nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = DecodeLockedCPLiquidity(make([]byte, LockedCPLiquidityKind.Length+1))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestDecode_ZeroDiscriminator(t *testing.T) {
	_, err := DecodeLockedCPLiquidity(make([]byte, LockedCPLiquidityKind.Length))
	assert.ErrorIs(t, err, ErrKindMismatch)
	assert.NotErrorIs(t, err, ErrLengthMismatch)

	_, err = DecodeLockedCLMMPosition(make([]byte, LockedCLMMPositionKind.Length))
	assert.ErrorIs(t, err, ErrKindMismatch)
	assert.NotErrorIs(t, err, ErrLengthMismatch)
}

func TestDecode_WrongKindSameLength(t *testing.T) {
	// A liquidity-sized blob tagged as a position record.
	raw, err := (&LockedCPLiquidityState{LockedLPAmount: 5}).Encode()
	require.NoError(t, err)
	copy(raw, LockedCLMMPositionKind.Discriminator[:])

	_, err = DecodeLockedCPLiquidity(raw)
	assert.ErrorIs(t, err, ErrKindMismatch)

	// And a position-sized blob tagged as a liquidity record.
	raw, err = (&LockedCLMMPositionState{Bump: 1}).Encode()
	require.NoError(t, err)
	copy(raw, LockedCPLiquidityKind.Discriminator[:])

	_, err = DecodeLockedCLMMPosition(raw)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestDecode_PayloadIsNotARecord(t *testing.T) {
	data := EncodeLockCPLiquidity(1, true)
	_, err := DecodeLockedCPLiquidity(data)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
