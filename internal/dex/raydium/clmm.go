// internal/dex/raydium/clmm.go
package raydium

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
	"lukechampine.com/uint128"
)

// PositionSeed is the CLMM personal position seed.
const PositionSeed = "position"

// PersonalPositionDiscriminator = sha256("account:PersonalPositionState")[:8]
var PersonalPositionDiscriminator = [8]byte{70, 111, 150, 126, 230, 15, 25, 117}

// PersonalPositionSize is the full account size including the discriminator.
const PersonalPositionSize = 8 + 1 + 32 + 32 + 4 + 4 + 16*3 + 8*2 + 24*3 + 8 + 8*7

// PositionRewardInfo is one reward slot of a personal position.
type PositionRewardInfo struct {
	GrowthInsideLastX64 [16]byte
	RewardAmountOwed    uint64
}

// PersonalPositionState is the CLMM account behind a position NFT.
type PersonalPositionState struct {
	Bump                    uint8
	NFTMint                 solana.PublicKey
	PoolID                  solana.PublicKey
	TickLowerIndex          int32
	TickUpperIndex          int32
	LiquidityRaw            [16]byte
	FeeGrowthInside0LastX64 [16]byte
	FeeGrowthInside1LastX64 [16]byte
	TokenFeesOwed0          uint64
	TokenFeesOwed1          uint64
	RewardInfos             [3]PositionRewardInfo
	RecentEpoch             uint64
	Padding                 [7]uint64
}

// Liquidity returns the position liquidity as u128.
func (p *PersonalPositionState) Liquidity() uint128.Uint128 {
	return uint128.FromBytes(p.LiquidityRaw[:])
}

// DerivePersonalPosition returns the personal position PDA of a position NFT.
func DerivePersonalPosition(clmmProgram, positionNFTMint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(PositionSeed), positionNFTMint[:]},
		clmmProgram,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive personal position for %s: %w", positionNFTMint, err)
	}
	return address, nil
}

// ParsePersonalPosition decodes raw personal position account data.
func ParsePersonalPosition(data []byte) (*PersonalPositionState, error) {
	if len(data) != PersonalPositionSize {
		return nil, fmt.Errorf("invalid personal position: data length %d, want %d", len(data), PersonalPositionSize)
	}
	if !bytes.Equal(data[:8], PersonalPositionDiscriminator[:]) {
		return nil, fmt.Errorf("invalid personal position: discriminator mismatch")
	}

	var position PersonalPositionState
	if err := borsh.Deserialize(&position, data[8:]); err != nil {
		return nil, fmt.Errorf("invalid personal position: %w", err)
	}
	return &position, nil
}
