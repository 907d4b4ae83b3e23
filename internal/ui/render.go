// internal/ui/render.go
package ui

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/solana-lock/internal/command"
	"github.com/rovshanmuradov/solana-lock/internal/lock"
	"github.com/rovshanmuradov/solana-lock/internal/ui/style"
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		style.LabelStyle.Render(label),
		style.ValueStyle.Render(value))
}

// RenderPlan renders a plan before it is signed.
func RenderPlan(plan *command.Plan) string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render(plan.Operation))
	b.WriteString("\n")

	keys := make([]string, 0, len(plan.Details))
	for k := range plan.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(row(k, plan.Details[k]) + "\n")
	}

	b.WriteString(row("fee_nft_mint", style.LockedStyle.Render(plan.FeeNFTMint.String())) + "\n")
	for i, s := range plan.Signers {
		b.WriteString(row(fmt.Sprintf("signer[%d]", i), style.SignerStyle.Render(s.String())) + "\n")
	}

	data, _ := plan.Call.Data()
	b.WriteString(row("program", plan.Call.ProgramID().String()) + "\n")
	b.WriteString(row("accounts", fmt.Sprintf("%d", len(plan.Call.Accounts()))) + "\n")
	b.WriteString(row("data", hex.EncodeToString(data)) + "\n")
	if len(plan.Setup) > 0 {
		b.WriteString(row("setup", fmt.Sprintf("%d instructions", len(plan.Setup))) + "\n")
	}

	return style.PanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderLiquidity renders a LockedCpLiquidityState record.
func RenderLiquidity(address solana.PublicKey, s *lock.LockedCPLiquidityState) string {
	lines := []string{
		style.TitleStyle.Render(lock.LockedCPLiquidityKind.Name),
		row("address", address.String()),
		row("pool", s.PoolID.String()),
		row("owner", s.LockedOwner.String()),
		row("fee_nft_mint", style.LockedStyle.Render(s.FeeNFTMint.String())),
		row("lp_mint", s.LockedLPMint.String()),
		row("locked_lp", fmt.Sprintf("%d", s.LockedLPAmount)),
		row("claimed_lp", fmt.Sprintf("%d", s.ClaimedLPAmount)),
		row("unclaimed_lp", fmt.Sprintf("%d", s.UnclaimedLPAmount)),
		row("last_lp", fmt.Sprintf("%d", s.LastLP)),
		row("last_k", s.LastK.String()),
		row("recent_epoch", fmt.Sprintf("%d", s.RecentEpoch)),
	}
	return style.PanelStyle.Render(strings.Join(lines, "\n"))
}

// RenderPosition renders a LockedClmmPositionState record.
func RenderPosition(address solana.PublicKey, s *lock.LockedCLMMPositionState) string {
	lines := []string{
		style.TitleStyle.Render(lock.LockedCLMMPositionKind.Name),
		row("address", address.String()),
		row("pool", s.PoolID.String()),
		row("owner", s.PositionOwner.String()),
		row("position", s.PositionID.String()),
		row("locked_nft_account", s.LockedNFTAccount.String()),
		row("fee_nft_mint", style.LockedStyle.Render(s.FeeNFTMint.String())),
		row("bump", fmt.Sprintf("%d", s.Bump)),
		row("recent_epoch", fmt.Sprintf("%d", s.RecentEpoch)),
	}
	return style.PanelStyle.Render(strings.Join(lines, "\n"))
}

// RenderLocks renders the result of ListLocks.
func RenderLocks(entries []command.LockEntry) string {
	if len(entries) == 0 {
		return style.WarningStyle.Render("no locks found")
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Liquidity != nil:
			out = append(out, RenderLiquidity(e.Address, e.Liquidity))
		case e.Position != nil:
			out = append(out, RenderPosition(e.Address, e.Position))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// RenderSignature renders a confirmed transaction.
func RenderSignature(op string, sig solana.Signature) string {
	return style.SuccessStyle.Render("✓ "+op+" confirmed") + "\n" + row("signature", sig.String())
}

// RenderError renders a failed command.
func RenderError(err error) string {
	return style.ErrorStyle.Render("✗ " + err.Error())
}
