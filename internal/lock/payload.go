package lock

import (
	"github.com/rovshanmuradov/solana-lock/internal/utils/binary"
)

// Field is one fixed-width instruction argument.
type Field interface {
	Size() int
	put(data []byte, offset int)
}

// U64 is an unsigned 64-bit little-endian argument.
type U64 uint64

func (U64) Size() int { return binary.Uint64Size }

func (v U64) put(data []byte, offset int) {
	binary.WriteUint64LittleEndian(uint64(v), data, offset)
}

// Bool is a one-byte boolean argument.
type Bool bool

func (Bool) Size() int { return binary.BoolSize }

func (v Bool) put(data []byte, offset int) {
	binary.WriteBool(bool(v), data, offset)
}

// Encode packs the discriminator followed by fields in declaration order.
// The result is exactly 8 + the sum of field widths long; there are no length
// prefixes or type tags.
func Encode(discriminator [DiscriminatorSize]byte, fields ...Field) []byte {
	size := DiscriminatorSize
	for _, f := range fields {
		size += f.Size()
	}

	data := make([]byte, size)
	copy(data[0:DiscriminatorSize], discriminator[:])

	offset := DiscriminatorSize
	for _, f := range fields {
		f.put(data, offset)
		offset += f.Size()
	}
	return data
}

// EncodeLockCPLiquidity: discriminator, lp_amount u64, with_metadata bool.
func EncodeLockCPLiquidity(lpAmount uint64, withMetadata bool) []byte {
	return Encode(LockCPLiquidityDiscriminator, U64(lpAmount), Bool(withMetadata))
}

// EncodeCollectCPFees: discriminator, fee_lp_amount u64.
func EncodeCollectCPFees(feeLPAmount uint64) []byte {
	return Encode(CollectCPFeesDiscriminator, U64(feeLPAmount))
}

// EncodeLockCLMMPosition: discriminator, with_metadata bool.
func EncodeLockCLMMPosition(withMetadata bool) []byte {
	return Encode(LockCLMMPositionDiscriminator, Bool(withMetadata))
}

// EncodeCollectCLMMFees has no arguments.
func EncodeCollectCLMMFees() []byte {
	return Encode(CollectCLMMFeesDiscriminator)
}
