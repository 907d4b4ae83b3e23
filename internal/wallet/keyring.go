package wallet

import (
	"github.com/gagliardetto/solana-go"
)

// Keyring maps public keys to the private keys able to sign for them.
type Keyring struct {
	keys map[solana.PublicKey]solana.PrivateKey
}

// NewKeyring returns a keyring holding the given wallets.
func NewKeyring(wallets ...*Wallet) *Keyring {
	k := &Keyring{keys: make(map[solana.PublicKey]solana.PrivateKey)}
	for _, w := range wallets {
		k.Add(w)
	}
	return k
}

// Add registers a wallet. Adding the same key twice is a no-op.
func (k *Keyring) Add(w *Wallet) {
	if w == nil {
		return
	}
	k.keys[w.PublicKey] = w.PrivateKey
}

// Has reports whether the keyring can sign for key.
func (k *Keyring) Has(key solana.PublicKey) bool {
	_, ok := k.keys[key]
	return ok
}

// Len returns the number of distinct keys.
func (k *Keyring) Len() int { return len(k.keys) }

// Get implements the solana-go private key getter used by Transaction.Sign.
func (k *Keyring) Get(key solana.PublicKey) *solana.PrivateKey {
	priv, ok := k.keys[key]
	if !ok {
		return nil
	}
	return &priv
}
