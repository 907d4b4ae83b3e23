// cmd/lockcli/root.go
package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/solana-lock/internal/command"
)

// rootCmd wires the CLI surface. Every subcommand loads config and
// credentials through newApp.
var rootCmd = &cobra.Command{
	Use:           "lockcli",
	Short:         "Lock Raydium liquidity and collect its fees",
	Long:          "Lock cp-swap LP tokens or CLMM position NFTs, collect fees and inspect lock records.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfig  string
	flagOutput  string
	flagYes     bool
	flagDryRun  bool
	flagSigners []string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to config file (env and defaults only when empty)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: json|text")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Send without confirmation")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Print the transaction plan without sending")
	rootCmd.PersistentFlags().StringArrayVar(&flagSigners, "signer", nil, "Extra keypair file able to sign (repeatable)")

	// lock-cp-liquidity
	var lockCP command.LockCPLiquidityCommand
	var lockCPPool, lockCPAccount string
	lockCPCmd := &cobra.Command{
		Use:   "lock-cp-liquidity",
		Short: "Lock LP tokens of a cp-swap pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if lockCP.Pool, err = parseKey("pool", lockCPPool); err != nil {
				return err
			}
			if lockCP.LPTokenAccount, err = parseKey("lp-account", lockCPAccount); err != nil {
				return err
			}
			return withApp(func(a *app) error {
				plan, err := a.processor.LockCPLiquidity(cmd.Context(), lockCP)
				if err != nil {
					return err
				}
				return a.run(cmd.Context(), plan)
			})
		},
	}
	lockCPCmd.Flags().StringVar(&lockCPPool, "pool", "", "cp-swap pool id")
	lockCPCmd.Flags().StringVar(&lockCPAccount, "lp-account", "", "Token account holding the LP tokens")
	lockCPCmd.Flags().Uint64Var(&lockCP.LPAmount, "amount", 0, "LP amount to lock")
	lockCPCmd.Flags().BoolVar(&lockCP.WithMetadata, "with-metadata", true, "Create fee NFT metadata")
	_ = lockCPCmd.MarkFlagRequired("pool")
	_ = lockCPCmd.MarkFlagRequired("lp-account")
	_ = lockCPCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(lockCPCmd)

	// collect-cp-fees
	var collect command.CollectCPFeesCommand
	var collectAccount string
	collectCmd := &cobra.Command{
		Use:   "collect-cp-fees",
		Short: "Collect all fees of a locked cp-swap position",
		Long:  "Collect all fees of a locked cp-swap position. The fee NFT mint must sign; pass its keypair with --signer.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if collect.FeeNFTAccount, err = parseKey("fee-nft-account", collectAccount); err != nil {
				return err
			}
			return withApp(func(a *app) error {
				plan, err := a.processor.CollectCPFees(cmd.Context(), collect)
				if err != nil {
					return err
				}
				return a.run(cmd.Context(), plan)
			})
		},
	}
	collectCmd.Flags().StringVar(&collectAccount, "fee-nft-account", "", "Token account holding the fee NFT")
	collectCmd.Flags().BoolVar(&collect.CreateTokenAccounts, "create-token-accounts", false, "Create receiving token accounts if missing")
	_ = collectCmd.MarkFlagRequired("fee-nft-account")
	rootCmd.AddCommand(collectCmd)

	// lock-clmm-position
	var lockCLMM command.LockCLMMPositionCommand
	var clmmMint, clmmAccount string
	lockCLMMCmd := &cobra.Command{
		Use:   "lock-clmm-position",
		Short: "Lock a CLMM position NFT",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if lockCLMM.PositionNFTMint, err = parseKey("position-mint", clmmMint); err != nil {
				return err
			}
			if clmmAccount != "" {
				if lockCLMM.PositionNFTAccount, err = parseKey("position-account", clmmAccount); err != nil {
					return err
				}
			}
			return withApp(func(a *app) error {
				plan, err := a.processor.LockCLMMPosition(cmd.Context(), lockCLMM)
				if err != nil {
					return err
				}
				return a.run(cmd.Context(), plan)
			})
		},
	}
	lockCLMMCmd.Flags().StringVar(&clmmMint, "position-mint", "", "Position NFT mint")
	lockCLMMCmd.Flags().StringVar(&clmmAccount, "position-account", "", "Token account holding the position NFT (default: owner ATA)")
	lockCLMMCmd.Flags().BoolVar(&lockCLMM.WithMetadata, "with-metadata", true, "Create fee NFT metadata")
	_ = lockCLMMCmd.MarkFlagRequired("position-mint")
	rootCmd.AddCommand(lockCLMMCmd)

	// show-locked-liquidity / show-locked-position
	rootCmd.AddCommand(&cobra.Command{
		Use:   "show-locked-liquidity <fee-nft-mint>",
		Short: "Show the locked cp-swap liquidity record of a fee NFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := parseKey("fee-nft-mint", args[0])
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				address, state, err := a.processor.LockedLiquidity(cmd.Context(), mint)
				if err != nil {
					return err
				}
				return printLocks([]command.LockEntry{{Address: address, Liquidity: state}})
			})
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "show-locked-position <fee-nft-mint>",
		Short: "Show the locked CLMM position record of a fee NFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := parseKey("fee-nft-mint", args[0])
			if err != nil {
				return err
			}
			return withApp(func(a *app) error {
				address, state, err := a.processor.LockedPosition(cmd.Context(), mint)
				if err != nil {
					return err
				}
				return printLocks([]command.LockEntry{{Address: address, Position: state}})
			})
		},
	})

	// list-locks
	var listOwner string
	listCmd := &cobra.Command{
		Use:   "list-locks",
		Short: "List lock records owned by a wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				owner, err := a.listOwner(listOwner)
				if err != nil {
					return err
				}
				entries, err := a.processor.ListLocks(cmd.Context(), owner)
				if err != nil {
					return err
				}
				return printLocks(entries)
			})
		},
	}
	listCmd.Flags().StringVar(&listOwner, "owner", "", "Owner to list (default: configured wallet)")
	rootCmd.AddCommand(listCmd)
}

func withApp(fn func(a *app) error) error {
	if err := checkOutput(); err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

func (a *app) listOwner(flag string) (solana.PublicKey, error) {
	if flag != "" {
		return parseKey("owner", flag)
	}
	if a.owner == nil {
		return solana.PublicKey{}, fmt.Errorf("--owner is required when no wallet is configured")
	}
	return a.owner.PublicKey, nil
}

func parseKey(name, value string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return key, nil
}
