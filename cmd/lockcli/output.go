// cmd/lockcli/output.go
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/solana-lock/internal/command"
	"github.com/rovshanmuradov/solana-lock/internal/ui"
)

func checkOutput() error {
	switch flagOutput {
	case "json", "text", "":
		return nil
	default:
		return fmt.Errorf("invalid --output: %s (use json|text)", flagOutput)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type accountView struct {
	Pubkey   string `json:"pubkey"`
	Writable bool   `json:"writable"`
	Signer   bool   `json:"signer"`
}

type planView struct {
	Operation      string            `json:"operation"`
	Program        string            `json:"program"`
	FeeNFTMint     string            `json:"fee_nft_mint"`
	Signers        []string          `json:"signers"`
	MissingSigners []string          `json:"missing_signers,omitempty"`
	Accounts       []accountView     `json:"accounts"`
	Data           string            `json:"data"`
	Setup          int               `json:"setup_instructions"`
	Details        map[string]string `json:"details"`
}

func keys(in []solana.PublicKey) []string {
	out := make([]string, len(in))
	for i, k := range in {
		out[i] = k.String()
	}
	return out
}

func printPlan(plan *command.Plan, missing []solana.PublicKey) error {
	if flagOutput == "json" {
		data, err := plan.Call.Data()
		if err != nil {
			return err
		}
		view := planView{
			Operation:      plan.Operation,
			Program:        plan.Call.ProgramID().String(),
			FeeNFTMint:     plan.FeeNFTMint.String(),
			Signers:        keys(plan.Signers),
			MissingSigners: keys(missing),
			Data:           hex.EncodeToString(data),
			Setup:          len(plan.Setup),
			Details:        plan.Details,
		}
		for _, meta := range plan.Call.Accounts() {
			view.Accounts = append(view.Accounts, accountView{
				Pubkey:   meta.PublicKey.String(),
				Writable: meta.IsWritable,
				Signer:   meta.IsSigner,
			})
		}
		return printJSON(view)
	}

	fmt.Println(ui.RenderPlan(plan))
	for _, k := range missing {
		fmt.Println(ui.RenderError(fmt.Errorf("missing signer %s", k)))
	}
	return nil
}

func printSignature(plan *command.Plan, sig solana.Signature) error {
	if flagOutput == "json" {
		return printJSON(map[string]string{
			"operation":    plan.Operation,
			"signature":    sig.String(),
			"fee_nft_mint": plan.FeeNFTMint.String(),
		})
	}
	fmt.Println(ui.RenderSignature(plan.Operation, sig))
	return nil
}

type lockView struct {
	Address string      `json:"address"`
	Kind    string      `json:"kind"`
	Record  interface{} `json:"record"`
}

type liquidityView struct {
	LockedLPAmount    uint64 `json:"locked_lp_amount"`
	ClaimedLPAmount   uint64 `json:"claimed_lp_amount"`
	UnclaimedLPAmount uint64 `json:"unclaimed_lp_amount"`
	LastLP            uint64 `json:"last_lp"`
	LastK             string `json:"last_k"`
	RecentEpoch       uint64 `json:"recent_epoch"`
	PoolID            string `json:"pool_id"`
	FeeNFTMint        string `json:"fee_nft_mint"`
	LockedOwner       string `json:"locked_owner"`
	LockedLPMint      string `json:"locked_lp_mint"`
}

type positionView struct {
	Bump             uint8  `json:"bump"`
	PositionOwner    string `json:"position_owner"`
	PoolID           string `json:"pool_id"`
	PositionID       string `json:"position_id"`
	LockedNFTAccount string `json:"locked_nft_account"`
	FeeNFTMint       string `json:"fee_nft_mint"`
	RecentEpoch      uint64 `json:"recent_epoch"`
}

func printLocks(entries []command.LockEntry) error {
	if flagOutput != "json" {
		fmt.Println(ui.RenderLocks(entries))
		return nil
	}

	views := make([]lockView, 0, len(entries))
	for _, e := range entries {
		v := lockView{Address: e.Address.String()}
		switch {
		case e.Liquidity != nil:
			s := e.Liquidity
			v.Kind = "locked_cp_liquidity"
			v.Record = liquidityView{
				LockedLPAmount:    s.LockedLPAmount,
				ClaimedLPAmount:   s.ClaimedLPAmount,
				UnclaimedLPAmount: s.UnclaimedLPAmount,
				LastLP:            s.LastLP,
				LastK:             s.LastK.String(),
				RecentEpoch:       s.RecentEpoch,
				PoolID:            s.PoolID.String(),
				FeeNFTMint:        s.FeeNFTMint.String(),
				LockedOwner:       s.LockedOwner.String(),
				LockedLPMint:      s.LockedLPMint.String(),
			}
		case e.Position != nil:
			s := e.Position
			v.Kind = "locked_clmm_position"
			v.Record = positionView{
				Bump:             s.Bump,
				PositionOwner:    s.PositionOwner.String(),
				PoolID:           s.PoolID.String(),
				PositionID:       s.PositionID.String(),
				LockedNFTAccount: s.LockedNFTAccount.String(),
				FeeNFTMint:       s.FeeNFTMint.String(),
				RecentEpoch:      s.RecentEpoch,
			}
		}
		views = append(views, v)
	}
	return printJSON(views)
}
