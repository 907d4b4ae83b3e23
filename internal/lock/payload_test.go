package lock

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadLayout(t *testing.T) {
	tests := []struct {
		name          string
		data          []byte
		discriminator [DiscriminatorSize]byte
		wantLen       int
	}{
		{"lock cp liquidity", EncodeLockCPLiquidity(1_000_000, true), LockCPLiquidityDiscriminator, 8 + 8 + 1},
		{"collect cp fees", EncodeCollectCPFees(CollectAllFees), CollectCPFeesDiscriminator, 8 + 8},
		{"lock clmm position", EncodeLockCLMMPosition(false), LockCLMMPositionDiscriminator, 8 + 1},
		{"collect clmm fees", EncodeCollectCLMMFees(), CollectCLMMFeesDiscriminator, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.data, tt.wantLen)
			assert.Equal(t, tt.discriminator[:], tt.data[:DiscriminatorSize])
		})
	}
}

func TestEncodeLockCPLiquidity_Fields(t *testing.T) {
	data := EncodeLockCPLiquidity(1_000_000, true)
	assert.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, byte(1), data[16])

	data = EncodeLockCPLiquidity(0, false)
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, byte(0), data[16])
}

func TestEncodeCollectCPFees_AllFees(t *testing.T) {
	data := EncodeCollectCPFees(CollectAllFees)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, data[8:])
	assert.Equal(t, uint64(math.MaxUint64), binary.LittleEndian.Uint64(data[8:]))
}

func TestEncode_Generic(t *testing.T) {
	disc := [DiscriminatorSize]byte{1, 2, 3, 4, 5, 6, 7, 8}
	data := Encode(disc, U64(0x0102030405060708), Bool(true), U64(1))

	assert.Len(t, data, 8+8+1+8)
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, data[8:16])
	assert.Equal(t, byte(1), data[16])
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, data[17:])
}
