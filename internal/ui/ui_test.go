package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/rovshanmuradov/solana-lock/internal/command"
	"github.com/rovshanmuradov/solana-lock/internal/lock"
)

func testPlan(t *testing.T) *command.Plan {
	t.Helper()
	owner := solana.NewWallet().PublicKey()
	feeMint := solana.NewWallet().PublicKey()
	call, err := lock.BuildLockCLMMPosition(lock.Programs{
		Lock:            solana.MustPublicKeyFromBase58("LockrWmn6K5twhz3y9w1dQERbmgSaRkfnTeTKbpofwE"),
		CLMM:            solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK"),
		Token:           solana.TokenProgramID,
		AssociatedToken: solana.SPLAssociatedTokenAccountProgramID,
		Metadata:        solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"),
		System:          solana.SystemProgramID,
		Rent:            solana.SysVarRentPubkey,
	}, lock.LockCLMMPositionParams{
		Owner:           owner,
		FeeNFTMint:      feeMint,
		PositionNFTMint: solana.NewWallet().PublicKey(),
		WithMetadata:    true,
	})
	require.NoError(t, err)
	return &command.Plan{
		Operation:  "lock_clmm_position",
		Call:       call,
		Signers:    []solana.PublicKey{owner, feeMint},
		FeeNFTMint: feeMint,
		Details:    map[string]string{"pool": "pool-id"},
	}
}

func TestRenderPlan(t *testing.T) {
	plan := testPlan(t)
	out := RenderPlan(plan)

	assert.Contains(t, out, "lock_clmm_position")
	assert.Contains(t, out, "pool-id")
	assert.Contains(t, out, plan.FeeNFTMint.String())
	assert.Contains(t, out, plan.Signers[0].String())
	assert.Contains(t, out, "bc25b38352965449") // discriminator prefix
	assert.NotContains(t, out, "setup")
}

func TestRenderRecords(t *testing.T) {
	addr := solana.NewWallet().PublicKey()
	liq := &lock.LockedCPLiquidityState{
		LockedLPAmount: 42,
		LastK:          uint128.New(7, 1),
		FeeNFTMint:     solana.NewWallet().PublicKey(),
	}
	out := RenderLiquidity(addr, liq)
	assert.Contains(t, out, addr.String())
	assert.Contains(t, out, "42")
	assert.Contains(t, out, uint128.New(7, 1).String())

	pos := &lock.LockedCLMMPositionState{Bump: 254, PositionID: solana.NewWallet().PublicKey()}
	out = RenderPosition(addr, pos)
	assert.Contains(t, out, "254")
	assert.Contains(t, out, pos.PositionID.String())

	list := RenderLocks([]command.LockEntry{
		{Address: addr, Kind: lock.LockedCPLiquidityKind, Liquidity: liq},
		{Address: addr, Kind: lock.LockedCLMMPositionKind, Position: pos},
	})
	assert.Contains(t, list, lock.LockedCPLiquidityKind.Name)
	assert.Contains(t, list, lock.LockedCLMMPositionKind.Name)
	assert.Contains(t, RenderLocks(nil), "no locks found")
}

func TestRenderStatus(t *testing.T) {
	sig := solana.Signature{1, 2, 3}
	assert.Contains(t, RenderSignature("collect_cp_fees", sig), sig.String())
	assert.Contains(t, RenderError(errors.New("boom")), "boom")
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		confirmed bool
		done      bool
	}{
		{"yes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true, true},
		{"no", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, false, true},
		{"other", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, cmd := NewConfirmModel("summary").Update(tt.msg)
			m := model.(ConfirmModel)

			assert.Equal(t, tt.confirmed, m.Confirmed())
			assert.Equal(t, tt.done, m.done)
			if tt.done {
				require.NotNil(t, cmd)
				assert.Equal(t, tea.Quit(), cmd())
			} else {
				assert.Nil(t, cmd)
				assert.Contains(t, m.View(), "Send this transaction?")
			}
		})
	}
}

func TestConfirmModel_IgnoresKeysAfterDone(t *testing.T) {
	model, _ := NewConfirmModel("summary").Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, model.(ConfirmModel).Confirmed())
	assert.Contains(t, model.View(), "cancelled")
}
