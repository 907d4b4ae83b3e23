// internal/command/mocks_test.go
package command

import (
	"bytes"
	"context"
	"testing"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/near/borsh-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/solana-lock/internal/blockchain"
	"github.com/rovshanmuradov/solana-lock/internal/lock"
)

// MockClient реализует интерфейс blockchain.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	args := m.Called(ctx, address)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockClient) GetProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...blockchain.Filter) ([]blockchain.ProgramAccount, error) {
	args := m.Called(ctx, program, filters)
	accounts, _ := args.Get(0).([]blockchain.ProgramAccount)
	return accounts, args.Error(1)
}

func (m *MockClient) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockClient) SendTransaction(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error) {
	args := m.Called(ctx, tx, opts)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *MockClient) WaitForConfirmation(ctx context.Context, signature solana.Signature, timeout time.Duration) error {
	args := m.Called(ctx, signature, timeout)
	return args.Error(0)
}

var _ blockchain.Client = (*MockClient)(nil)

func testPrograms() lock.Programs {
	return lock.Programs{
		Lock:            solana.MustPublicKeyFromBase58("LockrWmn6K5twhz3y9w1dQERbmgSaRkfnTeTKbpofwE"),
		CPSwap:          solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C"),
		CLMM:            solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK"),
		Token:           solana.TokenProgramID,
		Token2022:       solana.Token2022ProgramID,
		AssociatedToken: solana.SPLAssociatedTokenAccountProgramID,
		Metadata:        solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"),
		Memo:            solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"),
		System:          solana.SystemProgramID,
		Rent:            solana.SysVarRentPubkey,
	}
}

func borshAccount(t *testing.T, disc [8]byte, v interface{}) []byte {
	t.Helper()
	body, err := borsh.Serialize(v)
	require.NoError(t, err)
	return append(disc[:], body...)
}

func tokenAccountData(t *testing.T, mint, owner solana.PublicKey) []byte {
	t.Helper()
	var buf bytes.Buffer
	acc := token.Account{Mint: mint, Owner: owner, Amount: 1}
	require.NoError(t, bin.NewBinEncoder(&buf).Encode(&acc))
	return buf.Bytes()
}
