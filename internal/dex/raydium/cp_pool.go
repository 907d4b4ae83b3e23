// internal/dex/raydium/cp_pool.go
package raydium

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

var (
	// PoolStateDiscriminator = sha256("account:PoolState")[:8]
	PoolStateDiscriminator = [8]byte{247, 237, 227, 245, 215, 195, 222, 70}

	// ErrInvalidPoolAccount возвращается, если данные не являются PoolState cp-swap
	ErrInvalidPoolAccount = errors.New("invalid cp-swap pool account")
)

// CPPoolStateSize is the full account size including the discriminator.
const CPPoolStateSize = 8 + 10*32 + 5 + 7*8 + 31*8

// CPPoolState is the account layout of a cp-swap (CPMM) pool.
type CPPoolState struct {
	AmmConfig      solana.PublicKey
	PoolCreator    solana.PublicKey
	Token0Vault    solana.PublicKey
	Token1Vault    solana.PublicKey
	LPMint         solana.PublicKey
	Token0Mint     solana.PublicKey
	Token1Mint     solana.PublicKey
	Token0Program  solana.PublicKey
	Token1Program  solana.PublicKey
	ObservationKey solana.PublicKey

	AuthBump      uint8
	Status        uint8
	LPMintDecimal uint8
	Mint0Decimals uint8
	Mint1Decimals uint8

	LPSupply           uint64
	ProtocolFeesToken0 uint64
	ProtocolFeesToken1 uint64
	FundFeesToken0     uint64
	FundFeesToken1     uint64
	OpenTime           uint64
	RecentEpoch        uint64
	Padding            [31]uint64
}

// ParseCPPoolState decodes raw pool account data.
func ParseCPPoolState(data []byte) (*CPPoolState, error) {
	if len(data) != CPPoolStateSize {
		return nil, fmt.Errorf("%w: data length %d, want %d", ErrInvalidPoolAccount, len(data), CPPoolStateSize)
	}
	if !bytes.Equal(data[:8], PoolStateDiscriminator[:]) {
		return nil, fmt.Errorf("%w: discriminator mismatch", ErrInvalidPoolAccount)
	}

	var pool CPPoolState
	if err := borsh.Deserialize(&pool, data[8:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoolAccount, err)
	}
	return &pool, nil
}

// Vaults returns the pool's two reserve accounts.
func (p *CPPoolState) Vaults() (solana.PublicKey, solana.PublicKey) {
	return p.Token0Vault, p.Token1Vault
}
