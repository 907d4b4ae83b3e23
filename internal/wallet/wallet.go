// ==================================
// File: internal/wallet/wallet.go
// ==================================
package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"gopkg.in/yaml.v3"
)

// ErrCredential означает, что ключ не удалось прочитать или разобрать.
var ErrCredential = errors.New("unreadable signing credential")

// Wallet представляет кошелёк Solana.
type Wallet struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// NewWallet создаёт новый кошелёк из base58-encoded приватного ключа.
func NewWallet(privateKeyBase58 string) (*Wallet, error) {
	privateKeyBytes, err := base58.Decode(privateKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode private key: %v", ErrCredential, err)
	}
	if len(privateKeyBytes) != 64 {
		return nil, fmt.Errorf("%w: invalid private key length: expected 64 bytes, got %d", ErrCredential, len(privateKeyBytes))
	}
	return FromPrivateKey(solana.PrivateKey(privateKeyBytes)), nil
}

// FromPrivateKey оборачивает готовый приватный ключ.
func FromPrivateKey(key solana.PrivateKey) *Wallet {
	return &Wallet{PrivateKey: key, PublicKey: key.PublicKey()}
}

// LoadKeypairFile читает keypair в формате solana-keygen (JSON массив из 64 байт).
func LoadKeypairFile(path string) (*Wallet, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read keypair from %s: %v", ErrCredential, path, err)
	}
	return FromPrivateKey(key), nil
}

// WalletConfig represents the structure of wallets YAML file
type WalletConfig struct {
	Wallets []struct {
		Name       string `yaml:"name"`
		PrivateKey string `yaml:"private_key"`
	} `yaml:"wallets"`
}

// LoadWallets загружает кошельки из YAML-файла.
func LoadWallets(path string) (map[string]*Wallet, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file: %v", ErrCredential, err)
	}

	var config WalletConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrCredential, err)
	}

	wallets := make(map[string]*Wallet)
	for _, walletData := range config.Wallets {
		if walletData.Name == "" || walletData.PrivateKey == "" {
			continue
		}
		w, err := NewWallet(walletData.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("wallet %q: %w", walletData.Name, err)
		}
		wallets[walletData.Name] = w
	}

	if len(wallets) == 0 {
		return nil, fmt.Errorf("%w: no wallets found in %s", ErrCredential, path)
	}
	return wallets, nil
}

// LoadNamedWallet возвращает один кошелёк из YAML-файла.
func LoadNamedWallet(path, name string) (*Wallet, error) {
	wallets, err := LoadWallets(path)
	if err != nil {
		return nil, err
	}
	w, ok := wallets[name]
	if !ok {
		return nil, fmt.Errorf("%w: wallet %q not found in %s", ErrCredential, name, path)
	}
	return w, nil
}

// CreateAssociatedTokenAccountIdempotentInstruction создает инструкцию для создания
// ассоциированного токен-аккаунта под заданной токен-программой.
func CreateAssociatedTokenAccountIdempotentInstruction(
	payer, owner, mint, ata, tokenProgram, ataProgram solana.PublicKey,
) solana.Instruction {
	return solana.NewInstruction(
		ataProgram,
		[]*solana.AccountMeta{
			solana.Meta(payer).WRITE().SIGNER(),
			solana.Meta(ata).WRITE(),
			solana.Meta(owner),
			solana.Meta(mint),
			solana.Meta(solana.SystemProgramID),
			solana.Meta(tokenProgram),
		},
		[]byte{1}, // 1 = create_idempotent
	)
}

// String возвращает строковое представление кошелька (его публичный ключ).
func (w *Wallet) String() string {
	return w.PublicKey.String()
}
