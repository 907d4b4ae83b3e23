// cmd/lockcli/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-lock/internal/blockchain/solbc"
	"github.com/rovshanmuradov/solana-lock/internal/command"
	"github.com/rovshanmuradov/solana-lock/internal/config"
	"github.com/rovshanmuradov/solana-lock/internal/lock"
	"github.com/rovshanmuradov/solana-lock/internal/ui"
	"github.com/rovshanmuradov/solana-lock/internal/utils/logger"
	"github.com/rovshanmuradov/solana-lock/internal/wallet"
)

// app holds everything a subcommand needs.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	owner     *wallet.Wallet
	keyring   *wallet.Keyring
	processor *command.Processor
	submitter *command.Submitter
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	programs, err := cfg.LockPrograms()
	if err != nil {
		return nil, err
	}

	owner, err := loadOwner(cfg)
	if err != nil {
		return nil, err
	}

	keyring := wallet.NewKeyring()
	var ownerKey solana.PublicKey
	if owner != nil {
		keyring.Add(owner)
		ownerKey = owner.PublicKey
	}
	for _, path := range flagSigners {
		signer, err := wallet.LoadKeypairFile(path)
		if err != nil {
			return nil, err
		}
		keyring.Add(signer)
	}

	client := solbc.NewClient(cfg.RPCURL, cfg.CommitmentType(), log.Logger)

	a := &app{
		cfg:       cfg,
		log:       log,
		owner:     owner,
		keyring:   keyring,
		processor: command.NewProcessor(client, programs, ownerKey, wallet.RandomIdentity{}, log.Logger),
		submitter: command.NewSubmitter(client, ownerKey, keyring, command.SubmitOptions{
			ComputeUnitLimit: cfg.ComputeUnitLimit,
			ComputeUnitPrice: cfg.ComputeUnitPrice,
			ConfirmTimeout:   cfg.ConfirmTimeout,
			SkipPreflight:    cfg.SkipPreflight,
		}, log.Logger),
	}

	log.Debug("CLI initialized",
		zap.String("rpc", cfg.RPCURL),
		zap.String("commitment", cfg.Commitment),
		zap.String("lock_program", programs.Lock.String()),
		zap.Int("signers", keyring.Len()))
	return a, nil
}

// loadOwner returns nil when no wallet is configured; read-only commands
// work without one.
func loadOwner(cfg *config.Config) (*wallet.Wallet, error) {
	switch {
	case cfg.Wallet != "":
		return wallet.LoadKeypairFile(cfg.Wallet)
	case cfg.WalletsFile != "":
		return wallet.LoadNamedWallet(cfg.WalletsFile, cfg.WalletName)
	default:
		return nil, nil
	}
}

func (a *app) close() {
	_ = a.log.Sync()
}

// run previews, confirms and submits a plan.
func (a *app) run(ctx context.Context, plan *command.Plan) error {
	defer a.log.TrackPerformance(plan.Operation)()
	opLog := a.log.WithOperation(plan.Operation)

	missing, err := a.submitter.MissingSigners(plan)
	if err != nil {
		return err
	}

	if flagDryRun {
		opLog.Info("Dry run, transaction not sent", zap.Int("missing_signers", len(missing)))
		return printPlan(plan, missing)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: no key for %v, pass it with --signer", lock.ErrMissingSigner, missing)
	}

	if !flagYes {
		ok, err := ui.Confirm(ctx, ui.RenderPlan(plan), os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	sig, err := a.submitter.Submit(ctx, plan)
	if err != nil {
		a.log.LogError("Submit failed", err, zap.String("operation", plan.Operation))
		return err
	}
	a.log.WithTransaction(sig.String()).Info("Transaction confirmed",
		zap.String("operation", plan.Operation),
		zap.String("fee_nft_mint", plan.FeeNFTMint.String()))

	return printSignature(plan, sig)
}

var errCancelled = errors.New("cancelled by user")
