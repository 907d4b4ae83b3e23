package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// IdentityGenerator creates fresh signing identities, e.g. a new fee NFT mint.
type IdentityGenerator interface {
	NewIdentity() (*Wallet, error)
}

// RandomIdentity generates identities from the OS random source.
type RandomIdentity struct{}

// NewIdentity implements IdentityGenerator.
func (RandomIdentity) NewIdentity() (*Wallet, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: generate identity: %v", ErrCredential, err)
	}
	return FromPrivateKey(key), nil
}
