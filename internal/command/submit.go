// internal/command/submit.go
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-lock/internal/blockchain"
	"github.com/rovshanmuradov/solana-lock/internal/transaction"
	"github.com/rovshanmuradov/solana-lock/internal/wallet"
)

// SubmitOptions control how a plan is turned into a transaction.
type SubmitOptions struct {
	ComputeUnitLimit uint32
	ComputeUnitPrice uint64
	ConfirmTimeout   time.Duration
	SkipPreflight    bool
}

// Submitter signs, sends and confirms plans.
type Submitter struct {
	client  blockchain.Client
	payer   solana.PublicKey
	keyring *wallet.Keyring
	opts    SubmitOptions
	logger  *zap.Logger
}

// NewSubmitter создает отправителя транзакций
func NewSubmitter(client blockchain.Client, payer solana.PublicKey, keyring *wallet.Keyring, opts SubmitOptions, logger *zap.Logger) *Submitter {
	return &Submitter{
		client:  client,
		payer:   payer,
		keyring: keyring,
		opts:    opts,
		logger:  logger.Named("submitter"),
	}
}

func (s *Submitter) builder(plan *Plan) *transaction.Builder {
	for _, identity := range plan.Identities {
		s.keyring.Add(identity)
	}
	b := transaction.NewBuilder(s.payer, s.keyring).
		SetComputeBudget(s.opts.ComputeUnitLimit, s.opts.ComputeUnitPrice)
	for _, ix := range plan.Instructions() {
		b.AddInstruction(ix)
	}
	return b
}

// MissingSigners reports plan signers the keyring cannot sign for.
func (s *Submitter) MissingSigners(plan *Plan) ([]solana.PublicKey, error) {
	return s.builder(plan).MissingSigners()
}

// Submit builds the transaction, sends it once and waits for confirmation.
// Failed sends are not retried.
func (s *Submitter) Submit(ctx context.Context, plan *Plan) (solana.Signature, error) {
	tx, err := s.builder(plan).Build(ctx, s.client)
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := s.client.SendTransaction(ctx, tx, blockchain.TransactionOptions{SkipPreflight: s.opts.SkipPreflight})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send %s: %w", plan.Operation, err)
	}
	s.logger.Info("Transaction sent",
		zap.String("operation", plan.Operation),
		zap.String("signature", sig.String()))

	if err := s.client.WaitForConfirmation(ctx, sig, s.opts.ConfirmTimeout); err != nil {
		return sig, fmt.Errorf("confirm %s: %w", sig, err)
	}
	return sig, nil
}
